package common

import (
	"math"
	"strconv"
)

// Round rounds f to the given number of decimal places, half to even, based on
// the exact binary value of f. This is the same result Python's round(f, n)
// gives: 2.675 stays 2.67 because the stored double is just below the tie.
func Round(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	s := strconv.FormatFloat(f, 'f', places, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return f
	}
	return r
}

// FloorDiv and FloorMod follow floored division, so the remainder carries the
// sign of the divisor.
func FloorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

func FloorMod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}
