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

package cmd

import (
	"fmt"
	"os"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/common"
	"github.com/googlecloudplatform/smallfile/internal/logger"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd returns the smallfile command. run is called with the
// validated config once flags, config file and arguments are merged.
func NewRootCmd(run func(c *cfg.Config) error) (*cobra.Command, error) {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "smallfile [flags] [parent-dir]",
		Short: "Measure synchronous small-file write, sync and unlink latency",
		Long: `smallfile creates a private workspace under parent-dir (the current
directory by default) and, for each iteration, creates a file, writes one
block of random data to it, forces it to stable media bypassing the OS
caches, closes it and removes it. The run stops at the first failed cycle.`,
		Version:       common.GetVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := c.Workspace.ParentDir.UnmarshalText([]byte(args[0])); err != nil {
					return fmt.Errorf("error while resolving parent-dir: %w", err)
				}
			}

			if err := cfg.ValidateConfig(c); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			return run(c)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config-file", "", "The YAML config file to read settings from. Flags override it.")
	if err := cfg.BindFlags(v, rootCmd.Flags()); err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}

	return rootCmd, nil
}

// loadConfig merges the config file, when given, under the flags bound to v.
func loadConfig(v *viper.Viper, cfgFile string) (*cfg.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	var c cfg.Config
	err := v.Unmarshal(&c, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
		decoderConfig.ErrorUnused = true
	})
	if err != nil {
		return nil, fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	return &c, nil
}

// Execute runs the smallfile command and exits non-zero on failure.
func Execute() {
	rootCmd, err := NewRootCmd(runSmallfile)
	if err == nil {
		err = rootCmd.Execute()
	}

	if err != nil {
		logger.Errorf("error: %v", err)
	}
	logger.Close()

	if err != nil {
		os.Exit(1)
	}
}
