package field

import "math"

// Vec3 is a sampling coordinate. X and Z span the ground plane.
type Vec3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle on the X/Z ground plane. Bounds are inclusive.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ float64
}

// Width is the extent along X.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Depth is the extent along Z.
func (r Rect) Depth() float64 { return r.MaxZ - r.MinZ }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return !(r.Width() > 0) || !(r.Depth() > 0) }

// Contains reports whether (x, z) lies inside the rectangle, edges included.
func (r Rect) Contains(x, z float64) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Smoothstep is the Hermite ramp between edge0 and edge1. A degenerate range
// behaves as a hard step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if !(edge1 > edge0) {
		if x >= edge0 {
			return 1
		}
		return 0
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// finite replaces NaN and infinities with zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
