package utils

import (
	"math"
	"time"
)

// NextTradingDay returns the first weekday strictly after t. Only weekends
// are skipped; market holidays are not modeled.
func NextTradingDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Round2 rounds a price to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
