package field

// Op is the parameter set of one field variant. The set of implementations
// is closed: only types in this package satisfy it.
type Op interface {
	Kind() Kind
	sealed()
}

// Constant returns Value everywhere.
type Constant struct{ Value float64 }

type (
	// Add returns A + B.
	Add struct{}
	// Multiply returns A * B.
	Multiply struct{}
	// Subtract returns A - B.
	Subtract struct{}
	// Min returns the smaller of A and B.
	Min struct{}
	// Max returns the larger of A and B.
	Max struct{}
	// Power returns A raised to B. Results that are not finite evaluate to 0.
	Power struct{}
	// Abs returns |A|.
	Abs struct{}
	// Invert returns -A.
	Invert struct{}
	// Normalize maps [-1, 1] onto [0, 1].
	Normalize struct{}
	// Blend interpolates A toward B with weight (C+1)/2. Control values
	// outside [-1, 1] extrapolate.
	Blend struct{}
)

// ScaleBias returns A*Scale + Bias.
type ScaleBias struct{ Scale, Bias float64 }

// ClampOp bounds A to [Min, Max].
type ClampOp struct{ Min, Max float64 }

// Select picks A below the band [Min-Falloff/2, Max+Falloff/2] of the control
// C, B above it, and a smoothstep blend inside it.
type Select struct{ Min, Max, Falloff float64 }

// HeightSelector returns 1 where Min <= A <= Max and -1 elsewhere.
type HeightSelector struct{ Min, Max float64 }

func (Constant) Kind() Kind       { return KindConstant }
func (Add) Kind() Kind            { return KindAdd }
func (Multiply) Kind() Kind       { return KindMultiply }
func (Subtract) Kind() Kind       { return KindSubtract }
func (Min) Kind() Kind            { return KindMin }
func (Max) Kind() Kind            { return KindMax }
func (Power) Kind() Kind          { return KindPower }
func (Abs) Kind() Kind            { return KindAbs }
func (Invert) Kind() Kind         { return KindInvert }
func (Normalize) Kind() Kind      { return KindNormalize }
func (Blend) Kind() Kind          { return KindBlend }
func (ScaleBias) Kind() Kind      { return KindScaleBias }
func (ClampOp) Kind() Kind        { return KindClamp }
func (Select) Kind() Kind         { return KindSelect }
func (HeightSelector) Kind() Kind { return KindHeightSelector }

func (Constant) sealed()         {}
func (*Generator) sealed()       {}
func (Add) sealed()              {}
func (Multiply) sealed()         {}
func (Subtract) sealed()         {}
func (Min) sealed()              {}
func (Max) sealed()              {}
func (Power) sealed()            {}
func (Abs) sealed()              {}
func (Invert) sealed()           {}
func (Normalize) sealed()        {}
func (Blend) sealed()            {}
func (ScaleBias) sealed()        {}
func (ClampOp) sealed()          {}
func (*Curve) sealed()           {}
func (Select) sealed()           {}
func (Erosion) sealed()          {}
func (Beach) sealed()            {}
func (BeachSand) sealed()        {}
func (SedimentCliff) sealed()    {}
func (SedimentSediment) sealed() {}
func (Slope) sealed()            {}
func (HeightSelector) sealed()   {}
func (*RegionCache) sealed()     {}
