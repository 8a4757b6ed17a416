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
	"time"
)

type ShutdownFn func(ctx context.Context) error

// JoinShutdownFunc combines the provided shutdown functions into a single function.
func JoinShutdownFunc(shutdownFns ...ShutdownFn) ShutdownFn {
	return func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFns {
			if fn == nil {
				continue
			}
			err = errors.Join(err, fn(ctx))
		}
		return err
	}
}

// MetricHandle records what happens to file cycles.
type MetricHandle interface {
	// CycleCount counts finished cycles by result.
	CycleCount(ctx context.Context, inc int64, result string)

	// PhaseLatency records how long one phase of a cycle took.
	PhaseLatency(ctx context.Context, latency time.Duration, phase string)

	// WarningCount counts non-fatal anomalies by kind.
	WarningCount(ctx context.Context, inc int64, kind string)

	// BytesWritten counts bytes handed to the filesystem.
	BytesWritten(ctx context.Context, inc int64)
}
