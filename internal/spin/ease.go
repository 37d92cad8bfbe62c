package spin

// EaseOutCubic maps linear progress p in [0, 1] to 1 - (1 - p)^3.
//
// Values outside [0, 1] are clamped.
func EaseOutCubic(p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	q := 1 - p

	return 1 - q*q*q
}
