package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
	"github.com/specialistvlad/uiprobe/internal/executor"
	"github.com/specialistvlad/uiprobe/internal/report"
	"github.com/specialistvlad/uiprobe/modules/s3_report"
	"github.com/specialistvlad/uiprobe/modules/socketio_report"
)

// sinkCloseTimeout bounds the final flush of every report sink. The flush
// runs even when the run itself was interrupted.
const sinkCloseTimeout = 30 * time.Second

// Run loads the configuration, executes every (project, scenario) pair and
// reports the results. A non-nil summary is returned whenever execution
// started. Configuration problems are returned as *config.ConfigError before
// any browser is launched.
func (a *App) Run(ctx context.Context) (*report.Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger
	logger.Debug("App.Run started.", "paths", a.config.Paths, "driver", a.config.Driver)

	if err := a.healthCheckServer(); err != nil {
		return nil, err
	}
	defer a.closeHealthCheckServer()

	cfg, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return nil, err
	}
	if err := filterProjects(cfg, a.config.Projects); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.", "projects", len(cfg.Projects), "scenarios", len(cfg.Scenarios))

	drv, err := a.registry.Resolve(ctx, a.config.Driver, cfg)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, logger = ctxlog.With(ctx, "run_id", runID)
	logger.Info("🧪 Starting run", "driver", drv.Name(), "projects", len(cfg.Projects), "scenarios", len(cfg.Scenarios))

	sinks := a.openSinks(ctx)
	printer := report.NewPrinter(a.outW)

	pool := &executor.Pool{
		Driver: drv,
		Options: driver.Options{
			TestIDAttribute: cfg.TestIDAttribute,
			Headed:          a.config.Headed,
		},
		Config:  cfg,
		Workers: a.config.Workers,
		OnResult: func(r report.Result) {
			printer.Print(r)
			a.metrics.observe(r)
			sinks.Publish(ctx, r)
		},
	}
	a.setPool(pool)

	summary, runErr := pool.Run(ctx, runID)
	if summary == nil {
		return nil, runErr
	}
	printer.PrintSummary(summary)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkCloseTimeout)
	defer cancel()
	// Sink failures are logged by Fanout and never change the outcome.
	_ = sinks.Close(closeCtx, summary)

	if a.config.ReportPath != "" {
		if err := report.WriteJSONFile(a.config.ReportPath, summary); err != nil {
			return summary, fmt.Errorf("failed to write report: %w", err)
		}
		logger.Debug("JSON report written.", "path", a.config.ReportPath)
	}

	passed, failed := summary.Counts()
	logger.Info("🏁 Run finished", "passed", passed, "failed", failed, "duration", summary.Duration)
	return summary, runErr
}

// openSinks connects the configured report sinks. A sink that cannot be
// opened is skipped with a warning.
func (a *App) openSinks(ctx context.Context) report.Fanout {
	logger := ctxlog.FromContext(ctx)
	var sinks report.Fanout

	if a.config.S3.Bucket != "" {
		up, err := s3_report.New(ctx, a.config.S3)
		if err != nil {
			logger.Warn("S3 report sink disabled", "error", err)
		} else {
			sinks = append(sinks, up)
		}
	}
	if a.config.SocketIOURL != "" {
		pub, err := socketio_report.Connect(ctx, socketio_report.Config{URL: a.config.SocketIOURL})
		if err != nil {
			logger.Warn("Socket.io report sink disabled", "error", err)
		} else {
			sinks = append(sinks, pub)
		}
	}
	logger.Debug("Report sinks opened.", "count", len(sinks))
	return sinks
}

// filterProjects keeps only the named projects, in declaration order.
func filterProjects(cfg *config.RunConfiguration, names []string) error {
	if len(names) == 0 {
		return nil
	}
	var unknown []string
	for _, name := range names {
		if _, ok := cfg.Project(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return config.Errorf("unknown project(s): %s", strings.Join(unknown, ", "))
	}
	kept := make([]config.ProjectProfile, 0, len(names))
	for _, p := range cfg.Projects {
		if slices.Contains(names, p.Name) {
			kept = append(kept, p)
		}
	}
	cfg.Projects = kept
	return nil
}
