package calculator

import (
	"errors"
	"math"
)

var errNoValues = errors.New("no non-missing values")

// WindowRange returns the high and low of the non-missing values.
func WindowRange(values []float64) (high, low float64, err error) {
	high = math.Inf(-1)
	low = math.Inf(1)
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		n++
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	if n == 0 {
		return 0, 0, errNoValues
	}
	return high, low, nil
}

// First returns the earliest non-missing value.
func First(values []float64) (float64, bool) {
	for _, v := range values {
		if !math.IsNaN(v) {
			return v, true
		}
	}
	return 0, false
}

// Last returns the latest non-missing value.
func Last(values []float64) (float64, bool) {
	for i := len(values) - 1; i >= 0; i-- {
		if !math.IsNaN(values[i]) {
			return values[i], true
		}
	}
	return 0, false
}

// WindowChange returns the percent change from the first to the last
// non-missing value.
func WindowChange(values []float64) (float64, error) {
	first, ok := First(values)
	if !ok {
		return 0, errNoValues
	}
	last, _ := Last(values)
	if first == 0 {
		return 0, errors.New("first value is zero")
	}
	return (last - first) / first * 100, nil
}

// WindowPosition returns where current sits within [low, high] (0.0~1.0).
func WindowPosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
