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

package monitor

import (
	"context"
	"fmt"
	"os"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/common"
	"github.com/googlecloudplatform/smallfile/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// runIDKey tags every exported span with the run it belongs to.
const runIDKey = attribute.Key("smallfile.run_id")

// SetupTracing bootstraps the OpenTelemetry tracing pipeline. Spans are
// written as JSON to the configured trace file. It returns nil when tracing
// is disabled or could not be set up.
func SetupTracing(ctx context.Context, c *cfg.Config, runID string) common.ShutdownFn {
	if c.Monitoring.TraceFile == "" {
		return nil
	}

	tp, shutdown, err := newFileTraceProvider(ctx, string(c.Monitoring.TraceFile), runID)
	if err != nil {
		logger.Errorf("error occurred while setting up tracing: %v", err)
		return nil
	}
	otel.SetTracerProvider(tp)
	return shutdown
}

func newFileTraceProvider(ctx context.Context, path string, runID string) (*sdktrace.TracerProvider, common.ShutdownFn, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(f),
		stdouttrace.WithPrettyPrint())
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	res, err := getResource(ctx, resource.WithAttributes(runIDKey.String(runID)))
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter), sdktrace.WithResource(res))
	shutdown := func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		return err
	}
	return tp, shutdown, nil
}
