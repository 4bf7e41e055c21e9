package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"FxLens/internal/pipeline"
	"FxLens/internal/scheduler"
	"FxLens/internal/viewer"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type serveCmd struct {
	logger *zap.Logger
	config string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the chart and refresh it on a schedule" }
func (*serveCmd) Usage() string {
	return `fxlens serve [-config <path>]

  Renders the chart, serves it on the viewer address and re-renders it on
  schedule.refresh_cron until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "", "config file (defaults to $CONFIG_PATH or configs/config.yaml)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(c.config)
	if err != nil {
		c.logger.Error("startup failed", zap.Error(err))
		return subcommands.ExitFailure
	}

	store := &viewer.Store{}
	fetcher := newFetcher(cfg)
	c.logger.Info("data source", zap.String("name", fetcher.Name()))
	sched := scheduler.NewScheduler(ctx, cfg, fetcher, store, newNotifier(cfg, c.logger), c.logger)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		c.logger.Error("startup failed", zap.Error(err))
		return subcommands.ExitFailure
	}

	// With no schedule there is nothing to retry, so the first render must succeed.
	if _, err := sched.RefreshNow(); err != nil {
		if cfg.Schedule.RefreshCron == "" || !errors.Is(err, pipeline.ErrNoData) {
			c.logger.Error("initial render failed", zap.Error(err))
			return subcommands.ExitFailure
		}
		c.logger.Warn("initial render failed, waiting for next refresh", zap.Error(err))
	}

	sched.Start()
	defer sched.Stop()

	if err := serveViewer(ctx, cfg.Viewer.Listen, store, c.logger); err != nil {
		c.logger.Error("viewer stopped", zap.Error(err))
		return subcommands.ExitFailure
	}
	c.logger.Info("fxlens stopped")
	return subcommands.ExitSuccess
}
