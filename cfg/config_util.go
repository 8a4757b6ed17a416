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

// DefaultConfig returns the config that results from running without any
// flags or config file.
func DefaultConfig() *Config {
	return &Config{
		Iterations:       DefaultIterations,
		DefaultBlockSize: DefaultBlockSize,
		Entropy: EntropyConfig{
			Source:     StrongEntropy,
			FastPath:   DefaultFastEntropyPath,
			StrongPath: DefaultStrongEntropyPath,
		},
		File: FileConfig{
			CacheBypass:      CacheBypassAdvise,
			ShortWritePolicy: ShortWriteWarn,
		},
		Logging: LoggingConfig{
			Format:   "text",
			Severity: InfoLogSeverity,
			LogRotate: LogRotateLoggingConfig{
				MaxFileSizeMb:   512,
				BackupFileCount: 10,
				Compress:        true,
			},
		},
	}
}
