package field

import "sort"

// ControlPoint maps an input value to an output value on a Curve.
type ControlPoint struct{ In, Out float64 }

// DefaultCurvePoints is the identity-like curve used when fewer than four
// points are supplied.
var DefaultCurvePoints = []ControlPoint{{-1, -1}, {-0.5, -0.5}, {0.5, 0.5}, {1, 1}}

// Curve remaps A through a cubic spline over its control points.
type Curve struct {
	points []ControlPoint
}

// NewCurve sorts a copy of points by input. With fewer than four points the
// default curve is used and ok is false.
func NewCurve(points []ControlPoint) (c *Curve, ok bool) {
	ok = len(points) >= 4
	if !ok {
		points = DefaultCurvePoints
	}
	sorted := make([]ControlPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].In < sorted[j].In })
	return &Curve{points: sorted}, ok
}

func (*Curve) Kind() Kind { return KindCurve }

// Points returns a copy of the sorted control points.
func (c *Curve) Points() []ControlPoint {
	out := make([]ControlPoint, len(c.points))
	copy(out, c.points)
	return out
}

func (c *Curve) apply(v float64) float64 {
	pts := c.points
	n := len(pts)

	// First point whose input is greater than v.
	idx := sort.Search(n, func(i int) bool { return pts[i].In > v })

	clampIdx := func(i int) int {
		if i < 0 {
			return 0
		}
		if i > n-1 {
			return n - 1
		}
		return i
	}
	i0 := clampIdx(idx - 2)
	i1 := clampIdx(idx - 1)
	i2 := clampIdx(idx)
	i3 := clampIdx(idx + 1)

	if i1 == i2 {
		return pts[i1].Out
	}
	in0, in1 := pts[i1].In, pts[i2].In
	if in1-in0 == 0 {
		return pts[i1].Out
	}
	alpha := (v - in0) / (in1 - in0)
	return finite(cubicInterp(pts[i0].Out, pts[i1].Out, pts[i2].Out, pts[i3].Out, alpha))
}

func cubicInterp(n0, n1, n2, n3, a float64) float64 {
	p := (n3 - n2) - (n0 - n1)
	q := (n0 - n1) - p
	r := n2 - n0
	return p*a*a*a + q*a*a + r*a + n1
}
