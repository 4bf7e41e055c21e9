package model

import (
	"math"
	"strings"
	"time"
)

// Instrument pairs a display label with the provider ticker symbol.
type Instrument struct {
	Label  string `yaml:"label"`
	Symbol string `yaml:"symbol"`
}

// Point is a single daily close. A missing close is NaN.
type Point struct {
	Date  time.Time
	Value float64
}

// Valid reports whether the point carries a close.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Value)
}

// Series holds the close history of one instrument in ascending date order.
type Series struct {
	Instrument
	Points []Point
}

// ValidCount returns the number of non-missing closes.
func (s Series) ValidCount() int {
	n := 0
	for _, p := range s.Points {
		if p.Valid() {
			n++
		}
	}
	return n
}

// DenominatedIn reports whether the label carries the "(CCY)" marker.
func DenominatedIn(label, currency string) bool {
	return strings.Contains(label, "("+currency+")")
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
