package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"FxLens/internal/chart"
	"FxLens/internal/collector"
	"FxLens/internal/config"
	"FxLens/internal/notifier"
	"FxLens/internal/pipeline"
	"FxLens/internal/viewer"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler refreshes the chart on a cron schedule and publishes it to the viewer.
type Scheduler struct {
	Cron     *cron.Cron
	Config   *config.Config
	Fetcher  collector.Fetcher
	Store    *viewer.Store
	Notifier *notifier.TelegramNotifier
	Logger   *zap.Logger
	Ctx      context.Context
	// Output, when set, receives a copy of every rendered page.
	Output string
	Now    func() time.Time
}

// NewScheduler creates a new Scheduler. tn may be nil.
func NewScheduler(ctx context.Context, cfg *config.Config, fetcher collector.Fetcher, store *viewer.Store, tn *notifier.TelegramNotifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Config:   cfg,
		Fetcher:  fetcher,
		Store:    store,
		Notifier: tn,
		Logger:   logger,
		Ctx:      ctx,
		Output:   cfg.Chart.Output,
		Now:      time.Now,
	}
}

// Register adds the refresh job. An empty schedule registers nothing.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshJob); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RefreshNow runs the pipeline, renders the chart and publishes it. On error
// the previously published chart stays in place.
func (s *Scheduler) RefreshNow() (*pipeline.Result, error) {
	res, err := pipeline.Run(s.Ctx, s.Config, s.Fetcher, s.Logger, s.Now())
	if err != nil {
		return nil, err
	}

	fig := chart.BuildFigure(res.Converted, Layout(s.Config))
	var buf bytes.Buffer
	if err := chart.WriteHTML(&buf, fig, res.Converted); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	s.Store.Publish(&viewer.Snapshot{
		RunID:     res.RunID,
		HTML:      buf.Bytes(),
		Table:     res.Converted,
		UpdatedAt: res.End,
	})
	s.Logger.Info("chart published",
		zap.String("run_id", res.RunID),
		zap.Int("traces", fig.TraceCount()))

	if s.Output != "" {
		if err := os.WriteFile(s.Output, buf.Bytes(), 0o644); err != nil {
			return res, fmt.Errorf("write %s: %w", s.Output, err)
		}
	}

	s.notify(res)
	return res, nil
}

// Layout maps the configuration onto the chart layout.
func Layout(cfg *config.Config) chart.Layout {
	return chart.Layout{
		Title:       cfg.Chart.Title,
		Height:      cfg.Chart.Height,
		Instruments: cfg.Instruments,
		Rate:        cfg.Rate,
		Base:        cfg.Currency.Base,
		Quote:       cfg.Currency.Quote,
	}
}

func (s *Scheduler) refreshJob() {
	s.Logger.Info("running scheduled refresh")
	if _, err := s.RefreshNow(); err != nil {
		s.Logger.Error("refresh failed, keeping previous chart", zap.Error(err))
	}
}

func (s *Scheduler) notify(res *pipeline.Result) {
	if s.Notifier == nil {
		return
	}
	asOf := res.End
	if n := len(res.Converted.Dates); n > 0 {
		asOf = res.Converted.Dates[n-1]
	}
	msg := notifier.FormatRunSummary(res.Converted, s.Config, asOf, res.Skipped)
	if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
