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

// Package stats summarizes per-phase cycle latencies.
package stats

import (
	"math"
	"slices"
	"time"
)

// Percentile returns the pth percentile of the sorted durations in vals,
// interpolating linearly between the two closest observations (the Excel
// PERCENTILE method). It returns zero for an empty slice. p is clamped to
// [0, 100].
func Percentile(vals []time.Duration, p float64) time.Duration {
	n := len(vals)
	if n == 0 {
		return 0
	}
	p = math.Max(0, math.Min(100, p))

	rank := p / 100 * float64(n-1)
	kFloat, d := math.Modf(rank)
	k := int(kFloat)
	if k >= n-1 {
		return vals[n-1]
	}

	vk := float64(vals[k])
	vk1 := float64(vals[k+1])
	return time.Duration(vk + d*(vk1-vk))
}

// Summary condenses a series of latencies.
type Summary struct {
	Count int
	Min   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P90   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Summarize computes a Summary over vals. vals is not modified.
func Summarize(vals []time.Duration) Summary {
	if len(vals) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	var total time.Duration
	for _, v := range sorted {
		total += v
	}

	return Summary{
		Count: len(sorted),
		Min:   sorted[0],
		Mean:  total / time.Duration(len(sorted)),
		P50:   Percentile(sorted, 50),
		P90:   Percentile(sorted, 90),
		P99:   Percentile(sorted, 99),
		Max:   sorted[len(sorted)-1],
	}
}

// Series collects the latencies of one phase across cycles.
type Series struct {
	vals []time.Duration
}

func (s *Series) Add(d time.Duration) {
	s.vals = append(s.vals, d)
}

func (s *Series) Len() int {
	return len(s.vals)
}

func (s *Series) Summary() Summary {
	return Summarize(s.vals)
}
