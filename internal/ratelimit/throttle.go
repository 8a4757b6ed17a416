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

// Package ratelimit paces the start of file cycles.
package ratelimit

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// A simple interface for limiting the rate of some event.
//
// Safe for concurrent access.
type Throttle interface {
	// Block until the next event may start. If the context is cancelled
	// before then, return early with its error.
	Wait(ctx context.Context) error

	// Limit returns the configured rate in events per second, or +Inf when
	// unlimited.
	Limit() float64
}

type limiter struct {
	*rate.Limiter
}

// NewThrottle returns a Throttle admitting rateHz events per second with no
// bursts. A rateHz of zero or less means unlimited.
func NewThrottle(rateHz float64) Throttle {
	if rateHz <= 0 {
		return &limiter{rate.NewLimiter(rate.Inf, 1)}
	}
	return &limiter{rate.NewLimiter(rate.Limit(rateHz), 1)}
}

func (l *limiter) Wait(ctx context.Context) error {
	return l.Limiter.Wait(ctx)
}

func (l *limiter) Limit() float64 {
	if l.Limiter.Limit() == rate.Inf {
		return math.Inf(1)
	}
	return float64(l.Limiter.Limit())
}
