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

package common

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// resultKey specifies whether a cycle succeeded.
	resultKey = attribute.Key("result")
	// phaseKey specifies the cycle phase like open or sync.
	phaseKey = attribute.Key("phase")
	// warningKindKey specifies the kind of anomaly, like a short read.
	warningKindKey = attribute.Key("warning_kind")

	resultOptionCache,
	phaseOptionCache,
	warningKindOptionCache sync.Map
)

func loadOrStoreAttrOption[K comparable](mp *sync.Map, key K, attrSetGenFunc func() attribute.Set) metric.MeasurementOption {
	attrSet, ok := mp.Load(key)
	if ok {
		return attrSet.(metric.MeasurementOption)
	}
	v, _ := mp.LoadOrStore(key, metric.WithAttributeSet(attrSetGenFunc()))
	return v.(metric.MeasurementOption)
}

func attrOption(mp *sync.Map, key attribute.Key, value string) metric.MeasurementOption {
	return loadOrStoreAttrOption(mp, value,
		func() attribute.Set {
			return attribute.NewSet(key.String(value))
		})
}

// otelMetrics maintains the list of all metrics computed during a run.
type otelMetrics struct {
	cycleCount   metric.Int64Counter
	phaseLatency metric.Float64Histogram
	warningCount metric.Int64Counter
	bytesWritten metric.Int64Counter
}

func (o *otelMetrics) CycleCount(ctx context.Context, inc int64, result string) {
	o.cycleCount.Add(ctx, inc, attrOption(&resultOptionCache, resultKey, result))
}

func (o *otelMetrics) PhaseLatency(ctx context.Context, latency time.Duration, phase string) {
	o.phaseLatency.Record(ctx, float64(latency.Microseconds()), attrOption(&phaseOptionCache, phaseKey, phase))
}

func (o *otelMetrics) WarningCount(ctx context.Context, inc int64, kind string) {
	o.warningCount.Add(ctx, inc, attrOption(&warningKindOptionCache, warningKindKey, kind))
}

func (o *otelMetrics) BytesWritten(ctx context.Context, inc int64) {
	o.bytesWritten.Add(ctx, inc)
}

// NewOTelMetrics creates the cycle instruments on the global meter
// provider.
func NewOTelMetrics() (MetricHandle, error) {
	cycleMeter := otel.Meter("smallfile")
	cycleCount, err1 := cycleMeter.Int64Counter("cycle/count",
		metric.WithDescription("The cumulative number of file cycles performed, by result."))
	phaseLatency, err2 := cycleMeter.Float64Histogram("cycle/phase_latency",
		metric.WithDescription("The latency of a file cycle phase."),
		metric.WithUnit("us"),
		metric.WithExplicitBucketBoundaries(
			10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000, 250000, 500000, 1000000))
	warningCount, err3 := cycleMeter.Int64Counter("cycle/warning_count",
		metric.WithDescription("The cumulative number of non-fatal anomalies, by kind."))
	bytesWritten, err4 := cycleMeter.Int64Counter("cycle/bytes_written",
		metric.WithDescription("The cumulative number of bytes written to output files."),
		metric.WithUnit("By"))

	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return nil, err
	}

	return &otelMetrics{
		cycleCount:   cycleCount,
		phaseLatency: phaseLatency,
		warningCount: warningCount,
		bytesWritten: bytesWritten,
	}, nil
}
