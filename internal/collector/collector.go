package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FxLens/internal/model"

	"go.uber.org/zap"
)

// MinValidCloses is the fewest non-missing closes a series needs to be kept.
// A single point cannot be charted as a trajectory.
const MinValidCloses = 2

// ErrInsufficientData marks a response with too few usable closes.
var ErrInsufficientData = errors.New("insufficient data")

// SkipError records why an instrument was left out of the result.
type SkipError struct {
	Instrument model.Instrument
	Err        error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("no valid data for %s (%s): %v", e.Instrument.Label, e.Instrument.Symbol, e.Err)
}

func (e *SkipError) Unwrap() error { return e.Err }

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Data   map[string][]model.Point
	Errors map[string]error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloseSeries(_ context.Context, symbol string, _, _ time.Time) ([]model.Point, error) {
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	return m.Data[symbol], nil
}

// GenerateMockCloses returns count consecutive weekday closes ending before end,
// starting at base and drifting by step per session.
func GenerateMockCloses(end time.Time, count int, base, step float64) []model.Point {
	points := make([]model.Point, count)
	d := model.Day(end)
	for i := count - 1; i >= 0; i-- {
		d = d.AddDate(0, 0, -1)
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, -1)
		}
		points[i] = model.Point{Date: d, Value: base + float64(i)*step}
	}
	return points
}

// Collector fetches every configured instrument and keeps the usable ones.
type Collector struct {
	Fetcher Fetcher
	Logger  *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, logger *zap.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Logger: logger}
}

// Collect fetches each instrument in order, one request at a time. Failures
// are logged and returned as *SkipError; they never abort the remaining fetches.
func (c *Collector) Collect(ctx context.Context, instruments []model.Instrument, start, end time.Time) ([]model.Series, []error) {
	var (
		series  []model.Series
		skipped []error
	)
	for _, in := range instruments {
		log := c.Logger.With(zap.String("label", in.Label), zap.String("symbol", in.Symbol))

		s, err := c.fetchOne(ctx, in, start, end)
		if err != nil {
			skip := &SkipError{Instrument: in, Err: err}
			log.Warn("skipping series", zap.Error(err))
			skipped = append(skipped, skip)
			continue
		}
		log.Info("series fetched", zap.Int("points", len(s.Points)), zap.Int("valid", s.ValidCount()))
		series = append(series, s)
	}
	return series, skipped
}

func (c *Collector) fetchOne(ctx context.Context, in model.Instrument, start, end time.Time) (model.Series, error) {
	points, err := c.Fetcher.FetchCloseSeries(ctx, in.Symbol, start, end)
	if err != nil {
		return model.Series{}, err
	}
	s := model.Series{Instrument: in, Points: points}
	if len(points) == 0 {
		return s, fmt.Errorf("%w: empty response", ErrInsufficientData)
	}
	if n := s.ValidCount(); n < MinValidCloses {
		return s, fmt.Errorf("%w: %d valid closes, need %d", ErrInsufficientData, n, MinValidCloses)
	}
	return s, nil
}
