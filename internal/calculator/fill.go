package calculator

import (
	"fmt"
	"math"
)

// ForwardFill replaces each NaN with the most recent non-NaN value before it.
// Leading NaNs are left as is; values are never taken from later positions.
func ForwardFill(values []float64) []float64 {
	out := make([]float64, len(values))
	last := math.NaN()
	for i, v := range values {
		if !math.IsNaN(v) {
			last = v
		}
		out[i] = last
	}
	return out
}

// Multiply returns the elementwise product of a and b. NaN in either operand
// yields NaN.
func Multiply(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out, nil
}
