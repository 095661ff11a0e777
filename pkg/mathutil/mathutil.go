// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"fleetselect/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NearlyEqual checks two values against the package-wide comparison tolerance.
func NearlyEqual(val1, val2 float64) bool {
	return WithinTolerance(val1, val2, constants.ComparisonTolerance)
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// With n == 1 it returns just start.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	vals := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := 0; i < n; i++ {
		vals[i] = start + float64(i)*step
	}
	// Pin the endpoint so accumulated float error never overshoots stop.
	vals[n-1] = stop
	return vals
}
