package collector

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"FxLens/internal/model"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	qqq  = model.Instrument{Label: "QQQ (USD)", Symbol: "QQQ"}
	spy  = model.Instrument{Label: "SPY (USD)", Symbol: "SPY"}
	rate = model.Instrument{Label: "USD/KRW", Symbol: "KRW=X"}
	end  = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core), logs
}

func TestCollect_KeepsValidSkipsInsufficient(t *testing.T) {
	nan := math.NaN()
	f := &MockFetcher{
		Data: map[string][]model.Point{
			"QQQ": GenerateMockCloses(end, 25, 500, 1),
			"SPY": {
				{Date: end.AddDate(0, 0, -3), Value: 600},
				{Date: end.AddDate(0, 0, -2), Value: nan},
			},
		},
		Errors: map[string]error{"KRW=X": errors.New("boom")},
	}
	logger, logs := observedLogger()
	c := NewCollector(f, logger)

	series, skipped := c.Collect(context.Background(), []model.Instrument{qqq, spy, rate}, end.AddDate(0, 0, -30), end)

	if len(series) != 1 || series[0].Label != qqq.Label {
		t.Fatalf("expected only QQQ kept, got %+v", series)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %d", len(skipped))
	}
	var skip *SkipError
	if !errors.As(skipped[0], &skip) || skip.Instrument != spy {
		t.Errorf("expected SPY skip first, got %v", skipped[0])
	}
	if !errors.Is(skipped[0], ErrInsufficientData) {
		t.Errorf("expected insufficient data, got %v", skipped[0])
	}
	if errors.Is(skipped[1], ErrInsufficientData) {
		t.Errorf("fetch error should not be reported as insufficient data: %v", skipped[1])
	}

	warns := logs.FilterMessage("skipping series").All()
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warns))
	}
	ctx := warns[0].ContextMap()
	if ctx["label"] != spy.Label || ctx["symbol"] != spy.Symbol {
		t.Errorf("warning should identify label and symbol, got %v", ctx)
	}
}

func TestCollect_EmptyResponseSkipped(t *testing.T) {
	f := &MockFetcher{Data: map[string][]model.Point{}}
	logger, _ := observedLogger()
	series, skipped := NewCollector(f, logger).Collect(context.Background(), []model.Instrument{qqq}, end.AddDate(0, 0, -30), end)
	if len(series) != 0 || len(skipped) != 1 {
		t.Fatalf("expected skip, got series=%d skipped=%d", len(series), len(skipped))
	}
}

func TestCollect_ExactlyTwoValidKept(t *testing.T) {
	f := &MockFetcher{Data: map[string][]model.Point{
		"QQQ": GenerateMockCloses(end, 2, 500, 1),
	}}
	logger, _ := observedLogger()
	series, skipped := NewCollector(f, logger).Collect(context.Background(), []model.Instrument{qqq}, end.AddDate(0, 0, -30), end)
	if len(series) != 1 || len(skipped) != 0 {
		t.Fatalf("expected kept, got series=%d skipped=%d", len(series), len(skipped))
	}
}

func TestCollect_SequentialInConfiguredOrder(t *testing.T) {
	f := &MockFetcher{}
	logger, _ := observedLogger()
	NewCollector(f, logger).Collect(context.Background(), []model.Instrument{qqq, spy, rate}, end.AddDate(0, 0, -30), end)
	want := []string{"QQQ", "SPY", "KRW=X"}
	if len(f.Calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), f.Calls)
	}
	for i := range want {
		if f.Calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], f.Calls[i])
		}
	}
}

func TestGenerateMockCloses_WeekdaysAscending(t *testing.T) {
	points := GenerateMockCloses(end, 25, 100, 0.5)
	if len(points) != 25 {
		t.Fatalf("expected 25 points, got %d", len(points))
	}
	for i, p := range points {
		if wd := p.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("point %d falls on %s", i, wd)
		}
		if i > 0 && !points[i-1].Date.Before(p.Date) {
			t.Errorf("points not ascending at %d", i)
		}
		if !p.Date.Before(end) {
			t.Errorf("point %d not before end", i)
		}
	}
	if points[24].Value != 112 {
		t.Errorf("expected last value 112, got %v", points[24].Value)
	}
}
