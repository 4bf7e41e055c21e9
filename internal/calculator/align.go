package calculator

import (
	"math"
	"sort"
	"time"

	"FxLens/internal/model"
)

// Merge aligns the series on the ascending union of their dates. Each series
// becomes one column, in argument order; dates a series lacks are NaN.
func Merge(series ...model.Series) model.Table {
	seen := make(map[time.Time]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			seen[model.Day(p.Date)] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	table := model.Table{Dates: dates}
	for _, s := range series {
		values := make([]float64, len(dates))
		for i := range values {
			values[i] = math.NaN()
		}
		for _, p := range s.Points {
			values[index[model.Day(p.Date)]] = p.Value
		}
		table.Columns = append(table.Columns, model.Column{Name: s.Label, Values: values})
	}
	return table
}
