package occupancy

// Trend computes the percentage change of current guests versus the
// equal-length prior period. A zero baseline has no defined trend and
// returns nil rather than an error.
func Trend(currentTotal, previousTotal int) *float64 {
	if previousTotal == 0 {
		return nil
	}

	change := round2(float64(currentTotal-previousTotal) / float64(previousTotal) * 100)
	return &change
}
