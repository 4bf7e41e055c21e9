package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"FxLens/internal/model"
)

// RESTFetcher implements Fetcher against a generic daily-bars REST API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API. Close is null on
// sessions without a print.
type restBar struct {
	Timestamp int64    `json:"timestamp"`
	Close     *float64 `json:"close"`
}

func (f *RESTFetcher) FetchCloseSeries(ctx context.Context, symbol string, start, end time.Time) ([]model.Point, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("from", start.Format("2006-01-02"))
	q.Set("to", end.Format("2006-01-02"))
	endpoint := f.BaseURL + "/api/v1/bars/daily?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var bars []restBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}

	first, last := model.Day(start), model.Day(end)
	byDay := make(map[time.Time]float64, len(bars))
	for _, b := range bars {
		day := model.Day(time.Unix(b.Timestamp, 0).UTC())
		if day.Before(first) || !day.Before(last) {
			continue
		}
		v := math.NaN()
		if b.Close != nil {
			v = *b.Close
		}
		byDay[day] = v
	}
	return sortedPoints(byDay), nil
}
