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

package orchestrator

import (
	"fmt"
	"io"
	"time"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/common"
	"github.com/googlecloudplatform/smallfile/internal/cycle"
	"github.com/googlecloudplatform/smallfile/internal/stats"
)

// Report summarizes a run.
type Report struct {
	RunID       string
	Workspace   string
	Host        string
	BlockSize   int
	CacheBypass cfg.CacheBypassMode

	// Requested number of cycles.
	Iterations int

	Attempted    int
	Succeeded    int
	Warnings     int
	BytesWritten int64
	Elapsed      time.Duration

	// A cycle failed and the remaining ones were skipped.
	Aborted bool

	// The run was cancelled between cycles.
	Interrupted bool

	open, transfer, sync, close, remove, total stats.Series
}

func (r *Report) add(res cycle.Result) {
	r.Attempted++
	if res.Success {
		r.Succeeded++
	}
	r.Warnings += len(res.Warnings)
	r.BytesWritten += int64(res.BytesWritten)

	r.open.Add(res.Timings.Open)
	if res.State == cycle.Aborted && res.FailedIn == cycle.Init {
		return
	}
	r.transfer.Add(res.Timings.Transfer)
	r.sync.Add(res.Timings.Sync)
	r.close.Add(res.Timings.Close)
	r.remove.Add(res.Timings.Remove)
	r.total.Add(res.Timings.Total)
}

// PhaseStats is the latency summary of one cycle phase.
type PhaseStats struct {
	Phase   string
	Summary stats.Summary
}

// Phases returns the latency summaries in cycle order, followed by the
// whole-cycle total.
func (r *Report) Phases() []PhaseStats {
	return []PhaseStats{
		{common.PhaseOpen, r.open.Summary()},
		{common.PhaseTransfer, r.transfer.Summary()},
		{common.PhaseSync, r.sync.Summary()},
		{common.PhaseClose, r.close.Summary()},
		{common.PhaseRemove, r.remove.Summary()},
		{"total", r.total.Summary()},
	}
}

// Print writes a human-readable rendition of the report to w.
func (r *Report) Print(w io.Writer) {
	status := "completed"
	switch {
	case r.Aborted:
		status = "aborted"
	case r.Interrupted:
		status = "interrupted"
	}

	fmt.Fprintf(w, "run %s %s: %d of %d cycles attempted, %d succeeded\n",
		r.RunID, status, r.Attempted, r.Iterations, r.Succeeded)
	fmt.Fprintf(w, "host: %s\n", r.Host)
	fmt.Fprintf(w, "workspace: %s\n", r.Workspace)
	fmt.Fprintf(w, "block size: %s, cache bypass: %s\n", stats.Bytes(float64(r.BlockSize)), r.CacheBypass)

	rate := 0.0
	if secs := r.Elapsed.Seconds(); secs > 0 {
		rate = float64(r.Attempted) / secs
	}
	fmt.Fprintf(w, "written: %s in %v (%s), %d warnings\n",
		stats.Bytes(float64(r.BytesWritten)), r.Elapsed.Round(time.Microsecond), stats.Rate(rate), r.Warnings)

	if r.Attempted == 0 {
		return
	}

	fmt.Fprintf(w, "\n%-10s %12s %12s %12s %12s\n", "phase", "p50", "p90", "p99", "max")
	for _, p := range r.Phases() {
		if p.Summary.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%-10s %12v %12v %12v %12v\n",
			p.Phase,
			p.Summary.P50.Round(time.Microsecond),
			p.Summary.P90.Round(time.Microsecond),
			p.Summary.P99.Round(time.Microsecond),
			p.Summary.Max.Round(time.Microsecond))
	}
}
