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
	"fmt"
)

const (
	IterationsInvalidValueError       = "the value of iterations can't be negative"
	BlockSizeInvalidValueError        = "the value of block-size can't be negative"
	BlockSizeTooHighError             = "the value of block-size is too high. Max supported: 67108864"
	DefaultBlockSizeInvalidValueError = "the value of default-block-size must be positive"
	CyclesPerSecInvalidValueError     = "the value of cycles-per-sec can't be negative"
	PrometheusPortInvalidValueError   = "the value of prometheus-port must be between 0 and 65535"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLogFormat(format string) error {
	switch format {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("unsupported log format: %q", format)
}

func isValidBlockSizeConfig(c *Config) error {
	if c.BlockSize < 0 {
		return fmt.Errorf(BlockSizeInvalidValueError)
	}
	if c.BlockSize > MaxBlockSize {
		return fmt.Errorf(BlockSizeTooHighError)
	}
	if c.DefaultBlockSize <= 0 {
		return fmt.Errorf(DefaultBlockSizeInvalidValueError)
	}
	return nil
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if config.Iterations < 0 {
		return fmt.Errorf(IterationsInvalidValueError)
	}

	if err = isValidBlockSizeConfig(config); err != nil {
		return fmt.Errorf("error parsing block-size config: %w", err)
	}

	if config.CyclesPerSec < 0 {
		return fmt.Errorf(CyclesPerSecInvalidValueError)
	}

	if config.Metrics.PrometheusPort < 0 || config.Metrics.PrometheusPort > 65535 {
		return fmt.Errorf(PrometheusPortInvalidValueError)
	}

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidLogFormat(config.Logging.Format); err != nil {
		return fmt.Errorf("error parsing logging config: %w", err)
	}

	return nil
}
