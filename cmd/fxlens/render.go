package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"FxLens/internal/scheduler"
	"FxLens/internal/viewer"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type renderCmd struct {
	logger *zap.Logger
	config string
	output string
}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "fetch prices once and render the comparison chart" }
func (*renderCmd) Usage() string {
	return `fxlens render [-config <path>] [-o <file.html>]

  Fetches the configured instruments and exchange rate, then either writes
  the chart to a file (-o) or serves it on the viewer address until
  interrupted.
`
}

func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "", "config file (defaults to $CONFIG_PATH or configs/config.yaml)")
	f.StringVar(&c.output, "o", "", "write the chart HTML to this file and exit")
}

func (c *renderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(c.config)
	if err != nil {
		c.logger.Error("startup failed", zap.Error(err))
		return subcommands.ExitFailure
	}
	if c.output != "" {
		cfg.Chart.Output = c.output
	}

	store := &viewer.Store{}
	fetcher := newFetcher(cfg)
	c.logger.Info("data source", zap.String("name", fetcher.Name()))
	sched := scheduler.NewScheduler(ctx, cfg, fetcher, store, newNotifier(cfg, c.logger), c.logger)
	if _, err := sched.RefreshNow(); err != nil {
		c.logger.Error("render failed", zap.Error(err))
		return subcommands.ExitFailure
	}

	if cfg.Chart.Output != "" {
		c.logger.Info("chart written", zap.String("path", cfg.Chart.Output))
		return subcommands.ExitSuccess
	}
	if err := serveViewer(ctx, cfg.Viewer.Listen, store, c.logger); err != nil {
		c.logger.Error("viewer stopped", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
