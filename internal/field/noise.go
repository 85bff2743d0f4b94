package field

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Quality selects the coherent-noise basis used by a Generator.
type Quality uint8

const (
	// QualityFast is hashed lattice value noise.
	QualityFast Quality = iota
	// QualityStandard is classic gradient noise.
	QualityStandard
	// QualityBest is OpenSimplex noise.
	QualityBest
)

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityStandard:
		return "standard"
	case QualityBest:
		return "best"
	}
	return "unknown"
}

// Style shapes each octave before it is summed.
type Style uint8

const (
	StylePerlin Style = iota
	StyleBillow
	StyleRidged
)

// MaxOctaves bounds the octave count of a Generator.
const MaxOctaves = 30

// GeneratorParams are the user-facing parameters of fractal noise.
type GeneratorParams struct {
	Style       Style
	Seed        int64
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	Octaves     int
	Quality     Quality
}

// DefaultGeneratorParams returns the parameters used when a property is
// missing: six octaves of standard gradient noise at frequency 1.
func DefaultGeneratorParams() GeneratorParams {
	return GeneratorParams{
		Style:       StylePerlin,
		Frequency:   1,
		Lacunarity:  2,
		Persistence: 0.5,
		Octaves:     6,
		Quality:     QualityStandard,
	}
}

// Generator is a leaf producing fractal noise in [-1, 1].
type Generator struct {
	GeneratorParams
	bases []basis
}

// NewGenerator precomputes the per-octave bases for p. The octave count is
// clamped to [1, MaxOctaves].
func NewGenerator(p GeneratorParams) *Generator {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	if p.Octaves > MaxOctaves {
		p.Octaves = MaxOctaves
	}
	g := &Generator{GeneratorParams: p, bases: make([]basis, p.Octaves)}
	for i := range g.bases {
		seed := p.Seed + int64(i)*131
		switch p.Quality {
		case QualityFast:
			g.bases[i] = valueBasis{seed: seed}
		case QualityBest:
			g.bases[i] = simplexBasis{noise: opensimplex.New(seed)}
		default:
			g.bases[i] = perlinBasis{noise: perlin.NewPerlin(2, 2, 1, seed)}
		}
	}
	return g
}

// DefaultGenerator is the fallback leaf bound to unconnected slots: a single
// octave of standard noise at frequency 1 and seed 0.
func DefaultGenerator() *Generator {
	p := DefaultGeneratorParams()
	p.Octaves = 1
	return NewGenerator(p)
}

func (*Generator) Kind() Kind { return KindGenerator }

func (g *Generator) sample(p Vec3) float64 {
	freq := g.Frequency
	amp := 1.0
	var sum, norm float64
	for i, b := range g.bases {
		// Octave offsets keep integer sample points off the lattice, where
		// gradient noise is always zero.
		off := 0.5 + float64(i)*0.1731
		n := Clamp(b.at(p.X*freq+off, p.Y*freq+off, p.Z*freq+off), -1, 1)
		switch g.Style {
		case StyleBillow:
			n = 2*math.Abs(n) - 1
		case StyleRidged:
			r := 1 - math.Abs(n)
			n = 2*r*r - 1
		}
		sum += n * amp
		norm += math.Abs(amp)
		amp *= g.Persistence
		freq *= g.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return Clamp(finite(sum/norm), -1, 1)
}

type basis interface {
	at(x, y, z float64) float64
}

type perlinBasis struct{ noise *perlin.Perlin }

func (b perlinBasis) at(x, y, z float64) float64 {
	// Gradient noise peaks near +-0.7; rescale toward the full range.
	return b.noise.Noise3D(x, y, z) * 1.4
}

type simplexBasis struct{ noise opensimplex.Noise }

func (b simplexBasis) at(x, y, z float64) float64 {
	return b.noise.Eval3(x, y, z)
}

// valueBasis is trilinearly interpolated hashed lattice noise.
type valueBasis struct{ seed int64 }

func (b valueBasis) at(x, y, z float64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	v := func(dx, dy, dz int64) float64 {
		return lattice(ix+dx, iy+dy, iz+dz, b.seed)
	}
	i00 := Lerp(v(0, 0, 0), v(1, 0, 0), fx)
	i10 := Lerp(v(0, 1, 0), v(1, 1, 0), fx)
	i01 := Lerp(v(0, 0, 1), v(1, 0, 1), fx)
	i11 := Lerp(v(0, 1, 1), v(1, 1, 1), fx)
	return Lerp(Lerp(i00, i10, fy), Lerp(i01, i11, fy), fz)*2 - 1
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// lattice maps an integer lattice point to [0, 1].
func lattice(x, y, z, seed int64) float64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v ^= v >> 31
	return float64(v&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
