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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropySourceUnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected EntropySource
		wantErr  bool
	}{
		{"strong", StrongEntropy, false},
		{"FAST", FastEntropy, false},
		{"Fast", FastEntropy, false},
		{"urandom", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var e EntropySource

			err := e.UnmarshalText([]byte(tc.input))

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, e)
		})
	}
}

func TestEntropySourceIsStrong(t *testing.T) {
	assert.True(t, StrongEntropy.IsStrong())
	assert.True(t, EntropySource("").IsStrong())
	assert.False(t, FastEntropy.IsStrong())
}

func TestCacheBypassModeUnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected CacheBypassMode
		wantErr  bool
	}{
		{"advise", CacheBypassAdvise, false},
		{"DIRECT", CacheBypassDirect, false},
		{"none", CacheBypassNone, false},
		{"o_direct", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var m CacheBypassMode

			err := m.UnmarshalText([]byte(tc.input))

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, m)
		})
	}
}

func TestShortWritePolicyUnmarshalText(t *testing.T) {
	var p ShortWritePolicy

	require.NoError(t, p.UnmarshalText([]byte("Fail")))
	assert.Equal(t, ShortWriteFail, p)
	require.NoError(t, p.UnmarshalText([]byte("warn")))
	assert.Equal(t, ShortWriteWarn, p)
	assert.Error(t, p.UnmarshalText([]byte("ignore")))
}

func TestLogSeverityUnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected LogSeverity
		wantErr  bool
	}{
		{"trace", TraceLogSeverity, false},
		{"Debug", DebugLogSeverity, false},
		{"INFO", InfoLogSeverity, false},
		{"warning", WarningLogSeverity, false},
		{"error", ErrorLogSeverity, false},
		{"off", OffLogSeverity, false},
		{"warn", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var l LogSeverity

			err := l.UnmarshalText([]byte(tc.input))

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, l)
		})
	}
}

func TestLogSeverityRank(t *testing.T) {
	assert.Equal(t, 0, TraceLogSeverity.Rank())
	assert.Equal(t, 3, WarningLogSeverity.Rank())
	assert.Equal(t, 5, OffLogSeverity.Rank())
	assert.Equal(t, -1, LogSeverity("VERBOSE").Rank())
}

func TestResolvedPathUnmarshalText(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"/var/log/smallfile.log", "/var/log/smallfile.log"},
		{"~/smallfile.log", filepath.Join(homeDir, "smallfile.log")},
		{"logs/smallfile.log", filepath.Join(wd, "logs/smallfile.log")},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			var p ResolvedPath

			err := p.UnmarshalText([]byte(tc.input))

			require.NoError(t, err)
			assert.Equal(t, ResolvedPath(tc.expected), p)
		})
	}
}
