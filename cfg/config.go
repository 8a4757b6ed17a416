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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	BlockSize int `yaml:"block-size"`

	CyclesPerSec float64 `yaml:"cycles-per-sec"`

	DefaultBlockSize int `yaml:"default-block-size"`

	Entropy EntropyConfig `yaml:"entropy"`

	File FileConfig `yaml:"file"`

	Iterations int `yaml:"iterations"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Monitoring MonitoringConfig `yaml:"monitoring"`

	Workspace WorkspaceConfig `yaml:"workspace"`
}

type EntropyConfig struct {
	FastPath string `yaml:"fast-path"`

	Source EntropySource `yaml:"source"`

	StrongPath string `yaml:"strong-path"`
}

type FileConfig struct {
	CacheBypass CacheBypassMode `yaml:"cache-bypass"`

	ShortWritePolicy ShortWritePolicy `yaml:"short-write-policy"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format string `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type MonitoringConfig struct {
	TraceFile ResolvedPath `yaml:"trace-file"`
}

type WorkspaceConfig struct {
	KeepWorkspace bool `yaml:"keep-workspace"`

	ParentDir ResolvedPath `yaml:"parent-dir"`
}

func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	var err error

	flagSet.IntP("block-size", "", 0, "Size in bytes of the block written to each file. 0 means use the block size reported by the workspace filesystem.")

	err = v.BindPFlag(BlockSizeKey, flagSet.Lookup("block-size"))
	if err != nil {
		return err
	}

	flagSet.StringP("cache-bypass", "", string(CacheBypassAdvise), "How output files avoid the OS page cache. Value can be 'advise', 'direct' or 'none'.")

	err = v.BindPFlag(CacheBypassKey, flagSet.Lookup("cache-bypass"))
	if err != nil {
		return err
	}

	flagSet.Float64P("cycles-per-sec", "", 0, "Upper bound on the number of file cycles started per second. 0 means unlimited.")

	err = v.BindPFlag(CyclesPerSecKey, flagSet.Lookup("cycles-per-sec"))
	if err != nil {
		return err
	}

	flagSet.IntP("default-block-size", "", DefaultBlockSize, "Block size used when the filesystem block size cannot be determined.")

	err = v.BindPFlag(DefaultBlockSizeKey, flagSet.Lookup("default-block-size"))
	if err != nil {
		return err
	}

	flagSet.StringP("entropy-source", "", string(StrongEntropy), "Random data source. Value can be 'strong' or 'fast'.")

	err = v.BindPFlag(EntropySourceKey, flagSet.Lookup("entropy-source"))
	if err != nil {
		return err
	}

	flagSet.StringP("fast-entropy-path", "", DefaultFastEntropyPath, "Path of the non-blocking random device.")

	err = v.BindPFlag(EntropyFastPathKey, flagSet.Lookup("fast-entropy-path"))
	if err != nil {
		return err
	}

	flagSet.StringP("strong-entropy-path", "", DefaultStrongEntropyPath, "Path of the strong random device.")

	err = v.BindPFlag(EntropyStrongPathKey, flagSet.Lookup("strong-entropy-path"))
	if err != nil {
		return err
	}

	flagSet.IntP("iterations", "n", DefaultIterations, "Number of files to create, write, sync and remove.")

	err = v.BindPFlag(IterationsKey, flagSet.Lookup("iterations"))
	if err != nil {
		return err
	}

	flagSet.BoolP("keep-workspace", "", false, "Leave the (empty) workspace directory in place after the run.")

	err = v.BindPFlag(KeepWorkspaceKey, flagSet.Lookup("keep-workspace"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "The file for storing logs. When empty, logs go to stderr.")

	err = v.BindPFlag(LogFilePathKey, flagSet.Lookup("log-file"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "text", "The format of the log file: 'text' or 'json'.")

	err = v.BindPFlag(LogFormatKey, flagSet.Lookup("log-format"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", string(InfoLogSeverity), "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	err = v.BindPFlag(LogSeverityKey, flagSet.Lookup("log-severity"))
	if err != nil {
		return err
	}

	flagSet.IntP("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")

	err = v.BindPFlag(LogMaxFileSizeMBKey, flagSet.Lookup("log-rotate-max-file-size-mb"))
	if err != nil {
		return err
	}

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. 0 retains all.")

	err = v.BindPFlag(LogBackupFileCountKey, flagSet.Lookup("log-rotate-backup-file-count"))
	if err != nil {
		return err
	}

	flagSet.BoolP("log-rotate-compress", "", true, "Compress rotated log files using gzip.")

	err = v.BindPFlag(LogCompressKey, flagSet.Lookup("log-rotate-compress"))
	if err != nil {
		return err
	}

	flagSet.Int64P("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port and a path of /metrics. 0 disables it.")

	err = v.BindPFlag(PrometheusPortKey, flagSet.Lookup("prometheus-port"))
	if err != nil {
		return err
	}

	flagSet.StringP("short-write-policy", "", string(ShortWriteWarn), "What a short write does to a cycle. Value can be 'warn' or 'fail'.")

	err = v.BindPFlag(ShortWritePolicyKey, flagSet.Lookup("short-write-policy"))
	if err != nil {
		return err
	}

	flagSet.StringP("trace-file", "", "", "Write one span per file cycle to this file. Empty disables tracing.")

	err = v.BindPFlag(TraceFileKey, flagSet.Lookup("trace-file"))
	if err != nil {
		return err
	}

	flagSet.StringP("workspace-parent-dir", "", "", "Directory in which the per-run workspace is created. Defaults to the current directory.")

	err = v.BindPFlag(WorkspaceParentDirKey, flagSet.Lookup("workspace-parent-dir"))
	if err != nil {
		return err
	}

	return nil
}
