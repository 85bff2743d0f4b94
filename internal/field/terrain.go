package field

import "math"

// MaxErosionIterations bounds Erosion.Iterations.
const MaxErosionIterations = 8

// Erosion lowers points standing above their lowest horizontal neighbour.
type Erosion struct {
	SampleDistance float64
	Intensity      float64
	Iterations     int
}

// Beach flattens heights within BeachSize of WaterLevel.
type Beach struct {
	WaterLevel float64
	BeachSize  float64
}

// BeachSand is the mask of the beach band: 1 at the waterline fading to 0 at
// its edges. BlurRadius > 0 averages the height over a small cross first.
type BeachSand struct {
	WaterLevel float64
	BeachSize  float64
	BlurRadius float64
}

// SedimentCliff is the mask of where the eroded height B fell below the
// original height A by more than Threshold.
type SedimentCliff struct{ Threshold, Smoothing float64 }

// SedimentSediment is the mask of where the eroded height B rose above the
// original height A by more than Threshold.
type SedimentSediment struct{ Threshold, Smoothing float64 }

// SlopeMode selects what a Slope field returns.
type SlopeMode uint8

const (
	// SlopeMask returns the band-pass weight in [0, 1].
	SlopeMask SlopeMode = iota
	// SlopeScaled returns the weight multiplied by the raw height delta.
	SlopeScaled
)

// Slope measures the steepness of A in degrees and band-passes it between
// MinAngle and MaxAngle with smoothed edges.
type Slope struct {
	SampleDistance float64
	HeightScale    float64
	MinAngle       float64
	MaxAngle       float64
	MinSmoothing   float64
	MaxSmoothing   float64
	Mode           SlopeMode
}

func (Erosion) Kind() Kind          { return KindErosion }
func (Beach) Kind() Kind            { return KindBeach }
func (BeachSand) Kind() Kind        { return KindBeachSand }
func (SedimentCliff) Kind() Kind    { return KindSedimentCliff }
func (SedimentSediment) Kind() Kind { return KindSedimentSediment }
func (Slope) Kind() Kind            { return KindSlope }

// neighbours returns the four horizontal samples at distance d around p.
func neighbours(p Vec3, d float64) [4]Vec3 {
	return [4]Vec3{
		{p.X + d, p.Y, p.Z},
		{p.X - d, p.Y, p.Z},
		{p.X, p.Y, p.Z + d},
		{p.X, p.Y, p.Z - d},
	}
}

func (e Erosion) apply(center float64, n [4]float64) float64 {
	low := math.Min(math.Min(n[0], n[1]), math.Min(n[2], n[3]))
	erodeLine := (center + low) / 2
	v := center
	if center > erodeLine {
		v = center - (center-erodeLine)*e.Intensity
	}
	avg := (n[0] + n[1] + n[2] + n[3]) / 4
	iters := min(e.Iterations, MaxErosionIterations)
	for i := 1; i < iters; i++ {
		v = Lerp(v, avg, 0.5)
	}
	return v
}

// beachDistance returns the signed distance from the waterline and the
// smoothstep ramp of its magnitude across the beach band.
func beachDistance(height, water, size float64) (d, t float64) {
	d = height - water
	if !(size > 0) {
		return d, 1
	}
	return d, Smoothstep(0, size, math.Abs(d))
}

func (b Beach) apply(h float64) float64 {
	d, t := beachDistance(h, b.WaterLevel, b.BeachSize)
	switch {
	case d < -b.BeachSize:
		return b.WaterLevel - b.BeachSize
	case math.Abs(d) < b.BeachSize:
		return b.WaterLevel + d*t
	default:
		return h
	}
}

func (b BeachSand) apply(h float64) float64 {
	d, t := beachDistance(h, b.WaterLevel, b.BeachSize)
	if math.Abs(d) < b.BeachSize {
		return 1 - t
	}
	return 0
}

func (s SedimentCliff) apply(pre, post float64) float64 {
	return sedimentMask(pre-post, s.Threshold, s.Smoothing)
}

func (s SedimentSediment) apply(pre, post float64) float64 {
	return sedimentMask(post-pre, s.Threshold, s.Smoothing)
}

func sedimentMask(delta, threshold, smoothing float64) float64 {
	if smoothing <= 0 {
		if delta > threshold {
			return 1
		}
		return 0
	}
	return Clamp(Smoothstep(threshold, threshold+smoothing, delta), 0, 1)
}

func (s Slope) apply(center float64, n [4]float64) float64 {
	var delta float64
	for _, v := range n {
		delta = math.Max(delta, math.Abs(v-center))
	}
	dist := s.SampleDistance
	if !(dist > 0) {
		dist = 1e-6
	}
	angle := math.Atan(delta*s.HeightScale/dist) * 180 / math.Pi

	low := Smoothstep(s.MinAngle-s.MinSmoothing, s.MinAngle, angle)
	high := 1 - Smoothstep(s.MaxAngle, s.MaxAngle+s.MaxSmoothing, angle)
	if s.MaxSmoothing <= 0 && angle <= s.MaxAngle {
		high = 1
	}
	mask := Clamp(low*high, 0, 1)
	if s.Mode == SlopeScaled {
		return finite(mask * delta)
	}
	return mask
}
