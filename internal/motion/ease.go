package motion

import "math"

// Easing maps linear progress in [0, 1] to eased progress in [0, 1].
// Implementations must return 0 at 0 and 1 at 1.
type Easing func(p float64) float64

// Linear is the identity easing.
func Linear(p float64) float64 {
	return clamp01(p)
}

// EaseOutCubic decelerates toward the end. It is the counter default.
func EaseOutCubic(p float64) float64 {
	p = clamp01(p)
	return 1 - math.Pow(1-p, 3)
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(p float64) float64 {
	p = clamp01(p)
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

func clamp01(p float64) float64 {
	switch {
	case p <= 0 || math.IsNaN(p):
		return 0
	case p >= 1:
		return 1
	default:
		return p
	}
}
