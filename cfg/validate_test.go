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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero_iterations",
			mutate:  func(c *Config) { c.Iterations = 0 },
			wantErr: false,
		},
		{
			name:    "negative_iterations",
			mutate:  func(c *Config) { c.Iterations = -1 },
			wantErr: true,
		},
		{
			name:    "negative_block_size",
			mutate:  func(c *Config) { c.BlockSize = -4096 },
			wantErr: true,
		},
		{
			name:    "block_size_too_high",
			mutate:  func(c *Config) { c.BlockSize = MaxBlockSize + 1 },
			wantErr: true,
		},
		{
			name:    "zero_default_block_size",
			mutate:  func(c *Config) { c.DefaultBlockSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative_rate",
			mutate:  func(c *Config) { c.CyclesPerSec = -0.5 },
			wantErr: true,
		},
		{
			name:    "port_out_of_range",
			mutate:  func(c *Config) { c.Metrics.PrometheusPort = 70000 },
			wantErr: true,
		},
		{
			name:    "zero_log_file_size",
			mutate:  func(c *Config) { c.Logging.LogRotate.MaxFileSizeMb = 0 },
			wantErr: true,
		},
		{
			name:    "negative_backup_count",
			mutate:  func(c *Config) { c.Logging.LogRotate.BackupFileCount = -1 },
			wantErr: true,
		},
		{
			name:    "bad_log_format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)

			err := ValidateConfig(c)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
