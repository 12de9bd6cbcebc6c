package services

import "math"

// roundPercent rounds a percentage to the nearest whole number. Inputs are
// non-negative in every report, so half-away-from-zero matches half-up.
func roundPercent(v float64) int {
	return int(math.Round(v))
}
