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
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// EntropySource selects the device random blocks are read from.
type EntropySource string

const (
	// StrongEntropy is the potentially blocking source.
	StrongEntropy EntropySource = "strong"
	// FastEntropy is the non-blocking source.
	FastEntropy EntropySource = "fast"
)

func (e *EntropySource) UnmarshalText(text []byte) error {
	txtStr := string(text)
	source := strings.ToLower(txtStr)
	v := []string{string(StrongEntropy), string(FastEntropy)}
	if !slices.Contains(v, source) {
		return fmt.Errorf("invalid entropy source: %s. It can only accept values in the list: %v", txtStr, v)
	}
	*e = EntropySource(source)
	return nil
}

// IsStrong reports whether the strong source has been selected. The empty
// value counts as strong.
func (e EntropySource) IsStrong() bool {
	return e != FastEntropy
}

// CacheBypassMode controls how the OS page cache is kept out of the way of
// the output files.
type CacheBypassMode string

const (
	// CacheBypassAdvise asks the OS to skip caching on the open descriptor
	// (F_NOCACHE on macOS, fadvise on Linux).
	CacheBypassAdvise CacheBypassMode = "advise"
	// CacheBypassDirect opens output files for direct I/O.
	CacheBypassDirect CacheBypassMode = "direct"
	// CacheBypassNone leaves caching alone.
	CacheBypassNone CacheBypassMode = "none"
)

func (m *CacheBypassMode) UnmarshalText(text []byte) error {
	txtStr := string(text)
	mode := strings.ToLower(txtStr)
	v := []string{string(CacheBypassAdvise), string(CacheBypassDirect), string(CacheBypassNone)}
	if !slices.Contains(v, mode) {
		return fmt.Errorf("invalid cache-bypass value: %s. It can only accept values in the list: %v", txtStr, v)
	}
	*m = CacheBypassMode(mode)
	return nil
}

// ShortWritePolicy decides what a write that accepted fewer bytes than the
// block size does to the cycle.
type ShortWritePolicy string

const (
	// ShortWriteWarn logs the short write and lets the cycle succeed.
	ShortWriteWarn ShortWritePolicy = "warn"
	// ShortWriteFail fails the cycle, which stops the run.
	ShortWriteFail ShortWritePolicy = "fail"
)

func (p *ShortWritePolicy) UnmarshalText(text []byte) error {
	txtStr := string(text)
	policy := strings.ToLower(txtStr)
	v := []string{string(ShortWriteWarn), string(ShortWriteFail)}
	if !slices.Contains(v, policy) {
		return fmt.Errorf("invalid short-write-policy value: %s. It can only accept values in the list: %v", txtStr, v)
	}
	*p = ShortWritePolicy(policy)
	return nil
}

// LogSeverity represents the logging severity and can accept the following values
// "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF"
type LogSeverity string

// Constants for all supported log severities.
const (
	TraceLogSeverity   LogSeverity = "TRACE"
	DebugLogSeverity   LogSeverity = "DEBUG"
	InfoLogSeverity    LogSeverity = "INFO"
	WarningLogSeverity LogSeverity = "WARNING"
	ErrorLogSeverity   LogSeverity = "ERROR"
	OffLogSeverity     LogSeverity = "OFF"
)

// severityRanking maps each level to an integer for validation and comparison.
var severityRanking = map[LogSeverity]int{
	TraceLogSeverity:   0,
	DebugLogSeverity:   1,
	InfoLogSeverity:    2,
	WarningLogSeverity: 3,
	ErrorLogSeverity:   4,
	OffLogSeverity:     5,
}

func (l *LogSeverity) UnmarshalText(text []byte) error {
	level := LogSeverity(strings.ToUpper(string(text)))
	if _, ok := severityRanking[level]; !ok {
		return fmt.Errorf("invalid log severity level: %s. Must be one of [TRACE, DEBUG, INFO, WARNING, ERROR, OFF]", text)
	}
	*l = level
	return nil
}

// Rank returns the integer representation of the severity rank.
// Returns -1 if the severity is unknown.
func (l LogSeverity) Rank() int {
	if rank, ok := severityRanking[l]; ok {
		return rank
	}
	return -1
}

// ResolvedPath represents a file-path which is made absolute at decode time.
// A leading "~/" is expanded to the user's home directory.
type ResolvedPath string

func (p *ResolvedPath) UnmarshalText(text []byte) error {
	path, err := resolvePath(string(text))
	if err != nil {
		return err
	}
	*p = ResolvedPath(path)
	return nil
}

func resolvePath(filePath string) (string, error) {
	if filePath == "" || filepath.IsAbs(filePath) {
		return filePath, nil
	}

	if strings.HasPrefix(filePath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("fetch home dir: %w", err)
		}
		return filepath.Join(homeDir, filePath[2:]), nil
	}

	return filepath.Abs(filePath)
}
