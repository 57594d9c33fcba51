package math3d

import "math"

// Lerp interpolates between a and b by t. t is not clamped, so values outside
// [0, 1] extrapolate.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps t into [0, 1].
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// FloorClamp floors v and clamps the result into [lo, hi].
// NaN maps to lo. The clamp happens before the int conversion so that huge
// or infinite inputs never reach an implementation-defined float->int cast.
func FloorClamp(v float64, lo, hi int) int {
	f := math.Floor(v)
	switch {
	case math.IsNaN(f), f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	}
	return int(f)
}
