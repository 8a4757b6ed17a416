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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/googlecloudplatform/smallfile/cfg"
	"github.com/googlecloudplatform/smallfile/common"
	"github.com/googlecloudplatform/smallfile/internal/logger"
	"github.com/googlecloudplatform/smallfile/internal/monitor"
	"github.com/googlecloudplatform/smallfile/internal/orchestrator"
	"github.com/googlecloudplatform/smallfile/tracing"
	"gopkg.in/yaml.v3"
)

const shutdownTimeout = 5 * time.Second

// output receives the progress marks and the final report.
var output io.Writer = os.Stdout

func logConfig(c *cfg.Config) {
	out, err := yaml.Marshal(c)
	if err != nil {
		logger.Warnf("warning: unable to render config: %v", err)
		return
	}
	logger.Debugf("Effective config:\n%s", out)
}

// runSmallfile sets up logging and telemetry, then performs the run.
func runSmallfile(c *cfg.Config) (err error) {
	if err = logger.InitLogFile(c.Logging); err != nil {
		return fmt.Errorf("init log file: %w", err)
	}
	logger.Infof("smallfile version %s", common.GetVersion())
	logConfig(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o := orchestrator.New(c, output)

	shutdown := common.JoinShutdownFunc(
		monitor.SetupOTelMetricExporters(ctx, c),
		monitor.SetupTracing(ctx, c, o.RunID))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if serr := shutdown(shutdownCtx); serr != nil {
			logger.Warnf("warning: telemetry shutdown: %v", serr)
		}
	}()

	if metrics, merr := common.NewOTelMetrics(); merr != nil {
		logger.Warnf("warning: metrics disabled: %v", merr)
	} else {
		o.Metrics = metrics
	}
	if c.Monitoring.TraceFile != "" {
		o.Tracer = tracing.NewOTelTracer()
	}

	report, err := o.Run(ctx)
	if report != nil {
		report.Print(output)
	}
	return err
}
