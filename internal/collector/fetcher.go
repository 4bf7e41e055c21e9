package collector

import (
	"context"
	"time"

	"FxLens/internal/model"
)

// Fetcher defines the interface for fetching daily close history.
// end is exclusive. Points are returned in ascending date order.
type Fetcher interface {
	FetchCloseSeries(ctx context.Context, symbol string, start, end time.Time) ([]model.Point, error)
	Name() string
}
