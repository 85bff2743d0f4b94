package field

import "math"

func (a *Arena) eval(id ID, p Vec3) float64 {
	e := a.entry(id)
	if e == nil {
		return 0
	}
	c := e.children
	switch op := e.op.(type) {
	case Constant:
		return op.Value
	case *Generator:
		return op.sample(p)
	case Add:
		return a.eval(c[0], p) + a.eval(c[1], p)
	case Multiply:
		return a.eval(c[0], p) * a.eval(c[1], p)
	case Subtract:
		return a.eval(c[0], p) - a.eval(c[1], p)
	case Min:
		return math.Min(a.eval(c[0], p), a.eval(c[1], p))
	case Max:
		return math.Max(a.eval(c[0], p), a.eval(c[1], p))
	case Power:
		return power(a.eval(c[0], p), a.eval(c[1], p))
	case Abs:
		return math.Abs(a.eval(c[0], p))
	case Invert:
		return -a.eval(c[0], p)
	case ScaleBias:
		return a.eval(c[0], p)*op.Scale + op.Bias
	case Normalize:
		return (a.eval(c[0], p) + 1) * 0.5
	case ClampOp:
		lo, hi := op.Min, op.Max
		if lo > hi {
			lo, hi = hi, lo
		}
		return Clamp(a.eval(c[0], p), lo, hi)
	case *Curve:
		return op.apply(a.eval(c[0], p))
	case Select:
		return a.selectValue(op, c, p)
	case Blend:
		w := (a.eval(c[2], p) + 1) / 2
		return Lerp(a.eval(c[0], p), a.eval(c[1], p), w)
	case Erosion:
		return op.apply(a.eval(c[0], p), a.around(c[0], p, op.SampleDistance))
	case Beach:
		return op.apply(a.eval(c[0], p))
	case BeachSand:
		h := a.eval(c[0], p)
		if op.BlurRadius > 0 {
			n := a.around(c[0], p, op.BlurRadius)
			h = (h + n[0] + n[1] + n[2] + n[3]) / 5
		}
		return op.apply(h)
	case SedimentCliff:
		return op.apply(a.eval(c[0], p), a.eval(c[1], p))
	case SedimentSediment:
		return op.apply(a.eval(c[0], p), a.eval(c[1], p))
	case Slope:
		return op.apply(a.eval(c[0], p), a.around(c[0], p, op.SampleDistance))
	case HeightSelector:
		v := a.eval(c[0], p)
		if v >= op.Min && v <= op.Max {
			return 1
		}
		return -1
	case *RegionCache:
		if v, ok := op.lookup(p); ok {
			return v
		}
		return a.eval(c[0], p)
	}
	return 0
}

func (a *Arena) around(id ID, p Vec3, d float64) [4]float64 {
	var out [4]float64
	for i, q := range neighbours(p, d) {
		out[i] = a.eval(id, q)
	}
	return out
}

func (a *Arena) selectValue(op Select, c []ID, p Vec3) float64 {
	lo := op.Min - op.Falloff/2
	hi := op.Max + op.Falloff/2
	ctrl := a.eval(c[2], p)
	switch {
	case ctrl < lo:
		return a.eval(c[0], p)
	case ctrl > hi:
		return a.eval(c[1], p)
	case !(hi > lo):
		// Zero-width band: the control sits exactly on it.
		return a.eval(c[1], p)
	}
	w := Smoothstep(0, 1, (ctrl-lo)/(hi-lo))
	return Lerp(a.eval(c[0], p), a.eval(c[1], p), w)
}

// power is a^b, keeping the sign of a negative base under fractional
// exponents. Non-finite results are 0.
func power(a, b float64) float64 {
	v := math.Pow(a, b)
	if math.IsNaN(v) && a < 0 {
		v = -math.Pow(-a, b)
	}
	return finite(v)
}

type sedimentInputs struct {
	arena     *Arena
	pre, post ID
}

type sedimentSample struct {
	key       sedimentInputs
	pre, post float64
}

// EvaluateMany samples every field at p into out, which must be at least as
// long as fields. Sediment masks that share their pre and post inputs sample
// those inputs once.
func EvaluateMany(fields []Field, p Vec3, out []float64) {
	var shared []sedimentSample
	lookup := func(a *Arena, pre, post ID) (float64, float64) {
		k := sedimentInputs{a, pre, post}
		for _, s := range shared {
			if s.key == k {
				return s.pre, s.post
			}
		}
		s := sedimentSample{key: k, pre: a.eval(pre, p), post: a.eval(post, p)}
		shared = append(shared, s)
		return s.pre, s.post
	}

	for i, f := range fields {
		if !f.Valid() {
			out[i] = 0
			continue
		}
		e := &f.arena.entries[f.id]
		switch op := e.op.(type) {
		case SedimentCliff:
			out[i] = op.apply(lookup(f.arena, e.children[0], e.children[1]))
		case SedimentSediment:
			out[i] = op.apply(lookup(f.arena, e.children[0], e.children[1]))
		default:
			out[i] = f.arena.eval(f.id, p)
		}
	}
}
