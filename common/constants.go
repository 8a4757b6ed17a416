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

// Cycle phases, as recorded in the phase latency metric.
const (
	PhaseOpen     = "open"
	PhaseTransfer = "transfer"
	PhaseSync     = "sync"
	PhaseClose    = "close"
	PhaseRemove   = "remove"
)

// Cycle outcomes.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Warning kinds.
const (
	WarningShortRead  = "short_read"
	WarningShortWrite = "short_write"
	WarningCleanup    = "cleanup"
)
