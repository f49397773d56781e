// Package pricing computes stay totals. It is pure: no I/O, no clock.
package pricing

import "time"

// Day normalizes t to midnight UTC. All ledger and booking dates pass through
// here so that day arithmetic is exact integer subtraction, immune to the
// off-by-one a DST shift causes with local-time division.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights in the half-open range
// [checkIn, checkOut). Both arguments are normalized first, so callers may
// pass timestamps in any location. A non-positive result means the range is
// invalid.
func Nights(checkIn, checkOut time.Time) int {
	return int(Day(checkOut).Sub(Day(checkIn)) / (24 * time.Hour))
}

// Total prices a stay: nights at the nightly rate plus the one-time cleaning
// fee, if the villa charges one.
func Total(nightlyRate float64, cleaningFee *float64, nights int) float64 {
	total := nightlyRate * float64(nights)
	if cleaningFee != nil {
		total += *cleaningFee
	}
	return total
}
