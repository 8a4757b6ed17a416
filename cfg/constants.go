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

package cfg

const (
	// Logging-level constants

	TRACE   string = "TRACE"
	DEBUG   string = "DEBUG"
	INFO    string = "INFO"
	WARNING string = "WARNING"
	ERROR   string = "ERROR"
	OFF     string = "OFF"
)

const (
	// DefaultIterations matches the number of files the tool has always
	// cycled through per run.
	DefaultIterations = 1024

	// DefaultBlockSize is used when the workspace filesystem does not report
	// a native block size.
	DefaultBlockSize = 1024

	DefaultFastEntropyPath   = "/dev/urandom"
	DefaultStrongEntropyPath = "/dev/random"

	// MaxBlockSize caps block-size overrides; one block is written per file.
	MaxBlockSize = 64 << 20
)

// Config keys, as used by viper.
const (
	IterationsKey       = "iterations"
	BlockSizeKey        = "block-size"
	DefaultBlockSizeKey = "default-block-size"
	CyclesPerSecKey     = "cycles-per-sec"

	EntropySourceKey     = "entropy.source"
	EntropyFastPathKey   = "entropy.fast-path"
	EntropyStrongPathKey = "entropy.strong-path"

	WorkspaceParentDirKey = "workspace.parent-dir"
	KeepWorkspaceKey      = "workspace.keep-workspace"

	CacheBypassKey      = "file.cache-bypass"
	ShortWritePolicyKey = "file.short-write-policy"

	LogFilePathKey        = "logging.file-path"
	LogFormatKey          = "logging.format"
	LogSeverityKey        = "logging.severity"
	LogMaxFileSizeMBKey   = "logging.log-rotate.max-file-size-mb"
	LogBackupFileCountKey = "logging.log-rotate.backup-file-count"
	LogCompressKey        = "logging.log-rotate.compress"

	PrometheusPortKey = "metrics.prometheus-port"
	TraceFileKey      = "monitoring.trace-file"
)
