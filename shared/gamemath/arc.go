package gamemath

import "math"

// ArcOffset returns the vertical display offset of a half-sine hop. It is
// zero at progress 0 and progress duration and -peak at the midpoint.
// Negative is up.
func ArcOffset(progress, duration int, peak float64) float64 {
	if duration <= 0 || progress <= 0 || progress >= duration {
		return 0
	}
	return -math.Sin(math.Pi*float64(progress)/float64(duration)) * peak
}

// Fraction returns progress/duration clamped to [0, 1].
func Fraction(progress, duration int) float64 {
	if duration <= 0 {
		return 1
	}
	return ClampFloat(float64(progress)/float64(duration), 0, 1)
}

// ArcPosition returns the ground position of a jump at the given progress.
// At or past duration it returns target exactly.
func ArcPosition(start, target Vec2, progress, duration int) Vec2 {
	if progress >= duration {
		return target
	}
	return Lerp(start, target, Fraction(progress, duration))
}
