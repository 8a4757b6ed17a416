// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(original) })
	return recorder
}

func TestOTelTracer_RecordsSpan(t *testing.T) {
	recorder := setupRecorder(t)
	th := NewOTelTracer()

	_, span := th.StartSpan(context.Background(), "cycle")
	th.SetAttributes(span, attribute.Int("index", 3))
	th.AddEvent(span, "synced")
	th.EndSpan(span)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "cycle", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("index", 3))
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "synced", spans[0].Events()[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestOTelTracer_RecordError(t *testing.T) {
	recorder := setupRecorder(t)
	th := NewOTelTracer()

	_, span := th.StartSpan(context.Background(), "cycle")
	th.RecordError(span, nil)
	th.RecordError(span, errors.New("open failed"))
	th.EndSpan(span)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "open failed", spans[0].Status().Description)
}

func TestNoopTracer(t *testing.T) {
	th := NewNoopTracer()
	ctx := context.Background()

	newCtx, span := th.StartSpan(ctx, "cycle")
	th.SetAttributes(span, attribute.Bool("success", true))
	th.AddEvent(span, "synced")
	th.RecordError(span, errors.New("ignored"))
	th.EndSpan(span)

	assert.Equal(t, ctx, newCtx)
	assert.False(t, span.IsRecording())
}
