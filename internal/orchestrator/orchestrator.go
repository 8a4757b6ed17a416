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

// Package orchestrator drives a whole run: workspace setup, block sizing,
// the sequential file cycles, the final flush and teardown.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/common"
	"github.com/googlecloudplatform/smallfile/internal/cycle"
	"github.com/googlecloudplatform/smallfile/internal/device"
	"github.com/googlecloudplatform/smallfile/internal/entropy"
	"github.com/googlecloudplatform/smallfile/internal/logger"
	"github.com/googlecloudplatform/smallfile/internal/ratelimit"
	"github.com/googlecloudplatform/smallfile/internal/util"
	"github.com/googlecloudplatform/smallfile/internal/workspace"
	"github.com/googlecloudplatform/smallfile/tracing"
	"github.com/jacobsa/timeutil"
	"go.opentelemetry.io/otel/attribute"
)

// ErrCycleFailed is returned when a file cycle fails and the run stops.
var ErrCycleFailed = errors.New("file cycle failed")

// Orchestrator runs the configured number of file cycles. The exported
// fields are the collaborators; New fills them with the real ones.
type Orchestrator struct {
	config   *cfg.Config
	progress io.Writer

	// Opens the random byte source.
	OpenEntropy func(c cfg.EntropyConfig, strong bool) (entropy.Source, error)

	// Returns the FS files are created in.
	NewFS func(dir string, mode cfg.CacheBypassMode) cycle.FS

	// Returns the native block size at path, or fallback.
	ProbeBlockSize func(path string, fallback int) int

	Metrics common.MetricHandle
	Tracer  tracing.TraceHandle
	Clock   timeutil.Clock

	// Identifies the run in logs, traces and the report.
	RunID string
}

// New returns an Orchestrator for c writing progress marks to progress.
func New(c *cfg.Config, progress io.Writer) *Orchestrator {
	return &Orchestrator{
		config:         c,
		progress:       progress,
		OpenEntropy:    entropy.OpenDevice,
		NewFS:          cycle.NewDiskFS,
		ProbeBlockSize: util.ProbeBlockSize,
		Metrics:        common.NewNoopMetrics(),
		Tracer:         tracing.NewNoopTracer(),
		Clock:          timeutil.RealClock(),
		RunID:          uuid.NewString(),
	}
}

// Run performs the whole run. Setup failures return a nil Report. Once the
// cycles have started, a Report is always returned; a failed cycle stops
// the loop and makes Run return an error wrapping ErrCycleFailed. The final
// flush and workspace teardown happen however the loop ended.
func (o *Orchestrator) Run(ctx context.Context) (report *Report, err error) {
	start := o.Clock.Now()
	ctx, span := o.Tracer.StartSpan(ctx, "run")
	o.Tracer.SetAttributes(span, attribute.String("run_id", o.RunID))
	defer func() {
		o.Tracer.RecordError(span, err)
		o.Tracer.EndSpan(span)
	}()

	ws, err := workspace.Setup(string(o.config.Workspace.ParentDir), o.config.Workspace.KeepWorkspace)
	if err != nil {
		return nil, fmt.Errorf("set up workspace: %w", err)
	}
	logger.Infof("Run %s using workspace %s", o.RunID, ws.Path)

	defer func() {
		if ferr := ws.Finalize(); ferr != nil {
			logger.Warnf("warning: %v", ferr)
			if report != nil {
				report.Warnings++
			}
		}
	}()

	blockSize, err := o.blockSize(ws.Path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Block size: %d bytes", blockSize)

	// Allocated once and reused by every cycle.
	var buf []byte
	if o.config.File.CacheBypass == cfg.CacheBypassDirect {
		buf = device.AlignedBlock(blockSize)
	} else {
		buf = make([]byte, blockSize)
	}

	src, err := o.OpenEntropy(o.config.Entropy, o.config.Entropy.Source.IsStrong())
	if err != nil {
		return nil, fmt.Errorf("open entropy source: %w", err)
	}
	defer src.Close()

	fs := o.NewFS(ws.Path, o.config.File.CacheBypass)
	runner := cycle.NewRunner(fs, src, buf, o.config.File.ShortWritePolicy, o.Clock)
	throttle := ratelimit.NewThrottle(o.config.CyclesPerSec)

	report = &Report{
		RunID:       o.RunID,
		Workspace:   ws.Path,
		Host:        common.HostDescription(),
		BlockSize:   blockSize,
		CacheBypass: o.config.File.CacheBypass,
		Iterations:  o.config.Iterations,
	}

	fmt.Fprint(o.progress, "performing writes: ")
	for i := 0; i < o.config.Iterations; i++ {
		if werr := throttle.Wait(ctx); werr != nil {
			report.Interrupted = true
			err = fmt.Errorf("interrupted before cycle %d: %w", i+1, werr)
			break
		}

		res := o.runCycle(ctx, runner, i)
		report.add(res)
		fmt.Fprint(o.progress, ".")

		if !res.Success {
			report.Aborted = true
			err = fmt.Errorf("%w: %s: %w", ErrCycleFailed, res.Name, res.Err)
			break
		}
	}
	fmt.Fprint(o.progress, "\ndone.\n")

	if ferr := fs.FullSync(); ferr != nil {
		logger.Warnf("warning: final flush: %v", ferr)
		report.Warnings++
	}

	leftovers, lerr := ws.Leftovers(cycle.FileGlob)
	switch {
	case lerr != nil:
		logger.Warnf("warning: %v", lerr)
		report.Warnings++
	case len(leftovers) > 0:
		logger.Warnf("warning: %d files left in workspace: %v", len(leftovers), leftovers)
		report.Warnings++
	}

	report.Elapsed = o.Clock.Now().Sub(start)
	return report, err
}

// blockSize returns the configured block size, or the one probed at path.
func (o *Orchestrator) blockSize(path string) (int, error) {
	size := o.config.BlockSize
	if size <= 0 {
		size = o.ProbeBlockSize(path, o.config.DefaultBlockSize)
	}

	if o.config.File.CacheBypass == cfg.CacheBypassDirect && !device.IsAligned(size) {
		return 0, fmt.Errorf("block size %d is not a multiple of the direct I/O alignment %d", size, device.AlignSize)
	}
	return size, nil
}

// runCycle runs one cycle inside its own span and records its metrics.
func (o *Orchestrator) runCycle(ctx context.Context, runner *cycle.Runner, index int) cycle.Result {
	ctx, span := o.Tracer.StartSpan(ctx, "cycle")
	defer o.Tracer.EndSpan(span)

	res := runner.Run(index)

	o.Tracer.SetAttributes(span,
		attribute.Int("index", index),
		attribute.String("file", res.Name),
		attribute.Bool("success", res.Success),
		attribute.String("state", res.State.String()),
		attribute.Int("bytes_written", res.BytesWritten),
		attribute.Int64("sync_us", res.Timings.Sync.Microseconds()))
	for _, w := range res.Warnings {
		o.Tracer.AddEvent(span, "warning", attribute.String("message", w.Error()))
	}
	o.Tracer.RecordError(span, res.Err)

	o.recordMetrics(ctx, res)
	return res
}

func (o *Orchestrator) recordMetrics(ctx context.Context, res cycle.Result) {
	if res.Success {
		o.Metrics.CycleCount(ctx, 1, common.ResultSuccess)
	} else {
		o.Metrics.CycleCount(ctx, 1, common.ResultFailure)
	}

	o.Metrics.PhaseLatency(ctx, res.Timings.Open, common.PhaseOpen)
	if res.State != cycle.Aborted || res.FailedIn != cycle.Init {
		o.Metrics.PhaseLatency(ctx, res.Timings.Transfer, common.PhaseTransfer)
		o.Metrics.PhaseLatency(ctx, res.Timings.Sync, common.PhaseSync)
		o.Metrics.PhaseLatency(ctx, res.Timings.Close, common.PhaseClose)
		o.Metrics.PhaseLatency(ctx, res.Timings.Remove, common.PhaseRemove)
	}

	if res.BytesWritten > 0 {
		o.Metrics.BytesWritten(ctx, int64(res.BytesWritten))
	}
	for _, w := range res.Warnings {
		o.Metrics.WarningCount(ctx, 1, warningKind(w))
	}
}

func warningKind(err error) string {
	switch {
	case errors.Is(err, entropy.ErrShortRead):
		return common.WarningShortRead
	case errors.Is(err, cycle.ErrShortWrite):
		return common.WarningShortWrite
	default:
		return common.WarningCleanup
	}
}
