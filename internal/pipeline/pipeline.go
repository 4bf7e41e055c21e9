package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FxLens/internal/calculator"
	"FxLens/internal/collector"
	"FxLens/internal/config"
	"FxLens/internal/model"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoData is returned when no instrument produced a usable series.
var ErrNoData = errors.New("no valid data was fetched")

// Result is the outcome of one fetch → align → convert pass.
type Result struct {
	RunID     string
	Start     time.Time
	End       time.Time
	Merged    model.Table
	Converted model.Table
	Skipped   []error
}

// Window returns the [start, end) fetch range ending at now.
func Window(now time.Time, days int) (time.Time, time.Time) {
	return now.AddDate(0, 0, -days), now
}

// Run fetches every configured instrument, aligns the usable ones on a shared
// date index and appends quote-currency columns. It fails with ErrNoData
// before anything else happens when nothing was fetched.
func Run(ctx context.Context, cfg *config.Config, fetcher collector.Fetcher, logger *zap.Logger, now time.Time) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	res.Start, res.End = Window(now, cfg.WindowDays)
	log := logger.With(zap.String("run_id", res.RunID), zap.String("source", fetcher.Name()))
	log.Info("fetching series",
		zap.Time("start", res.Start),
		zap.Time("end", res.End),
		zap.Int("instruments", len(cfg.AllInstruments())))

	series, skipped := collector.NewCollector(fetcher, log).Collect(ctx, cfg.AllInstruments(), res.Start, res.End)
	res.Skipped = skipped

	res.Merged = calculator.Merge(series...)
	if res.Merged.Empty() {
		if reasons := multierr.Combine(skipped...); reasons != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoData, reasons)
		}
		return nil, ErrNoData
	}

	res.Converted = calculator.Convert(res.Merged, cfg.Rate.Label, cfg.Currency.Base, cfg.Currency.Quote)
	if _, ok := res.Merged.Column(cfg.Rate.Label); !ok {
		log.Warn("exchange rate missing, no converted columns", zap.String("rate", cfg.Rate.Label))
	}
	log.Info("tables built",
		zap.Int("dates", len(res.Converted.Dates)),
		zap.Strings("columns", res.Converted.Names()),
		zap.Int("skipped", len(skipped)))
	return res, nil
}
