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

package logger

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	textLinePattern = `^time="[0-9/:. ]{26}" severity=%s message="cycle: %s"\n$`
	jsonLinePattern = `^\{"timestamp":\{"seconds":\d{10},"nanos":\d{1,9}\},"severity":"%s","message":"cycle: %s"\}\n$`
)

type LoggerTest struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTest))
}

// //////////////////////////////////////////////////////////////////////
// Boilerplate
// //////////////////////////////////////////////////////////////////////

type logCall struct {
	severity string
	message  string
	log      func(format string, v ...interface{})
}

var logCalls = []logCall{
	{cfg.TRACE, "opened tmp1.smallfile", Tracef},
	{cfg.DEBUG, "synced tmp1.smallfile", Debugf},
	{cfg.INFO, "removed tmp1.smallfile", Infof},
	{cfg.WARNING, "short read", Warnf},
	{cfg.ERROR, "open failed", Errorf},
}

// captureLogs points the default logger at buf with the given format and
// severity.
func captureLogs(buf *bytes.Buffer, format string, level string) {
	defaultLoggerFactory.format = format
	programLevel := new(slog.LevelVar)
	defaultLogger = slog.New(defaultLoggerFactory.createJsonOrTextHandler(buf, programLevel, "cycle: "))
	setLoggingLevel(level, programLevel)
}

func linePattern(format string, c logCall) *regexp.Regexp {
	p := textLinePattern
	if format == "json" {
		p = jsonLinePattern
	}
	return regexp.MustCompile(fmt.Sprintf(p, c.severity, regexp.QuoteMeta(c.message)))
}

func (t *LoggerTest) TearDownTest() {
	defaultLoggerFactory.format = "text"
	defaultLogger = defaultLoggerFactory.newLogger(cfg.INFO)
}

// //////////////////////////////////////////////////////////////////////
// Tests
// //////////////////////////////////////////////////////////////////////

func (t *LoggerTest) TestSeverityFiltering() {
	levels := []string{cfg.TRACE, cfg.DEBUG, cfg.INFO, cfg.WARNING, cfg.ERROR, cfg.OFF}
	for _, format := range []string{"text", "json"} {
		for threshold, level := range levels {
			t.Run(format+"_"+level, func() {
				var buf bytes.Buffer
				captureLogs(&buf, format, level)

				for i, c := range logCalls {
					c.log("%s", c.message)
					out := buf.String()
					buf.Reset()

					if i < threshold {
						assert.Empty(t.T(), out, "%s logged at %s", c.severity, level)
						continue
					}
					assert.Regexp(t.T(), linePattern(format, c), out)
				}
			})
		}
	}
}

func (t *LoggerTest) TestInfoWithAttributes() {
	var buf bytes.Buffer
	captureLogs(&buf, "json", cfg.INFO)

	Info("cycle done", "index", 7, "phase", "sync")

	assert.Contains(t.T(), buf.String(), `"message":"cycle: cycle done"`)
	assert.Contains(t.T(), buf.String(), `"index":7`)
	assert.Contains(t.T(), buf.String(), `"phase":"sync"`)
}

func (t *LoggerTest) TestSetLoggingLevel() {
	testData := []struct {
		inputLevel           string
		programLevel         *slog.LevelVar
		expectedProgramLevel slog.Level
	}{
		{
			cfg.TRACE,
			new(slog.LevelVar),
			LevelTrace,
		},
		{
			cfg.DEBUG,
			new(slog.LevelVar),
			LevelDebug,
		},
		{
			cfg.WARNING,
			new(slog.LevelVar),
			LevelWarn,
		},
		{
			cfg.ERROR,
			new(slog.LevelVar),
			LevelError,
		},
		{
			cfg.OFF,
			new(slog.LevelVar),
			LevelOff,
		},
	}

	for _, test := range testData {
		setLoggingLevel(test.inputLevel, test.programLevel)
		assert.Equal(t.T(), test.programLevel.Level(), test.expectedProgramLevel)
	}
}

func (t *LoggerTest) TestInitLogFile() {
	format := "text"
	filePath := filepath.Join(t.T().TempDir(), "log.txt")
	fileSize := 100
	backupFileCount := 2
	newLogConfig := cfg.LoggingConfig{
		FilePath: cfg.ResolvedPath(filePath),
		Severity: "DEBUG",
		Format:   format,
		LogRotate: cfg.LogRotateLoggingConfig{
			MaxFileSizeMb:   fileSize,
			BackupFileCount: backupFileCount,
			Compress:        true,
		},
	}

	err := InitLogFile(newLogConfig)
	defer func() {
		Close()
		require.NoError(t.T(), InitLogFile(cfg.LoggingConfig{Format: "text", Severity: cfg.InfoLogSeverity}))
	}()

	require.NoError(t.T(), err)
	require.NotNil(t.T(), defaultLoggerFactory.file)
	assert.Equal(t.T(), filePath, defaultLoggerFactory.file.Filename)
	assert.Equal(t.T(), fileSize, defaultLoggerFactory.file.MaxSize)
	assert.Equal(t.T(), backupFileCount, defaultLoggerFactory.file.MaxBackups)
	assert.True(t.T(), defaultLoggerFactory.file.Compress)
	assert.Equal(t.T(), format, defaultLoggerFactory.format)
	assert.Equal(t.T(), cfg.DEBUG, defaultLoggerFactory.level)
	assert.Equal(t.T(), fileSize, defaultLoggerFactory.logRotateConfig.MaxFileSizeMb)
	// Logs end up in the file.
	Infof("removed tmp1.smallfile")
	content, err := os.ReadFile(filePath)
	require.NoError(t.T(), err)
	assert.Contains(t.T(), string(content), "removed tmp1.smallfile")
}

func (t *LoggerTest) TestInitLogFile_UnwritablePath() {
	filePath := filepath.Join(t.T().TempDir(), "missing-dir", "log.txt")

	err := InitLogFile(cfg.LoggingConfig{FilePath: cfg.ResolvedPath(filePath), Format: "text"})

	assert.Error(t.T(), err)
}

func (t *LoggerTest) TestSetLogFormatToText() {
	defaultLoggerFactory = &loggerFactory{
		file:  nil,
		level: cfg.INFO, // setting log level to INFO by default
	}

	testData := []struct {
		format        string
		handlerFormat string
	}{
		{
			"text",
			"text",
		},
		{
			"json",
			"json",
		},
		{
			"",
			"json",
		},
	}

	for _, test := range testData {
		SetLogFormat(test.format)

		assert.NotNil(t.T(), defaultLoggerFactory)
		assert.NotNil(t.T(), defaultLogger)
		assert.Equal(t.T(), defaultLoggerFactory.format, test.format)
		var buf bytes.Buffer
		captureLogs(&buf, test.format, defaultLoggerFactory.level)
		Infof("removed tmp1.smallfile")
		assert.Regexp(t.T(), linePattern(test.handlerFormat, logCalls[2]), buf.String())
	}
	SetLogFormat("text")
}
