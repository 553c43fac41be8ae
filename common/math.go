package common

// Approach moves value toward target by at most rate*delta and never
// overshoots. It reports whether target was reached.
func Approach(value *float64, target, rate, delta float64) bool {
	if *value == target {
		return true
	}
	step := rate * delta
	if *value > target {
		*value -= step
		if *value < target {
			*value = target
		}
	} else {
		*value += step
		if *value > target {
			*value = target
		}
	}
	return *value == target
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
