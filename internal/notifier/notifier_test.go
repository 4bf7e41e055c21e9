package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"FxLens/internal/config"
	"FxLens/internal/model"

	"go.uber.org/zap"
)

func TestSend_PostsHTMLMessage(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42", "", zap.NewNop())
	n.BaseURL = srv.URL
	if err := n.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/bottok/sendMessage" {
		t.Errorf("unexpected path %s", path)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestSendWithRetry_GivesUpAfterContextCancel(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42", "", zap.NewNop())
	n.BaseURL = srv.URL
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := n.SendWithRetry(ctx, "hello", 3)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected one attempt before backoff, got %d", calls)
	}
}

func TestSendWithRetry_NoRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("tok", "42", "", zap.NewNop())
	n.BaseURL = srv.URL
	err := n.SendWithRetry(context.Background(), "hello", 0)
	if err == nil || !strings.Contains(err.Error(), "all 1 retries exhausted") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFormatRunSummary(t *testing.T) {
	cfg := config.Default()
	tbl := model.Table{
		Dates: []time.Time{
			time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC),
		},
		Columns: []model.Column{
			{Name: "QQQ (USD)", Values: []float64{500, 550}},
			{Name: "USD/KRW", Values: []float64{1300, math.NaN()}},
			{Name: "QQQ (USD) (KRW)", Values: []float64{650000, 715000}},
		},
	}
	skipped := []error{errors.New("no valid data for SPY (USD) (SPY): insufficient data")}
	msg := FormatRunSummary(tbl, cfg, tbl.Dates[1], skipped)

	for _, want := range []string{
		"2025-06-27",
		"<b>QQQ (USD)</b>: $550.00 (+10.00%)",
		"₩715,000",
		"SPY (USD): no data",
		"USD/KRW</b>: 1300.00",
		"Skipped",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, msg)
		}
	}
}

func TestFormatRunSummary_NoRate(t *testing.T) {
	cfg := config.Default()
	tbl := model.Table{
		Dates:   []time.Time{time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC)},
		Columns: []model.Column{{Name: "QQQ (USD)", Values: []float64{550}}},
	}
	msg := FormatRunSummary(tbl, cfg, tbl.Dates[0], nil)
	if !strings.Contains(msg, "USD/KRW: no data") {
		t.Errorf("expected missing rate note, got:\n%s", msg)
	}
	if strings.Contains(msg, "₩") {
		t.Errorf("no KRW values expected without a rate, got:\n%s", msg)
	}
}
