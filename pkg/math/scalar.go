package math

import "github.com/chewxy/math32"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}
