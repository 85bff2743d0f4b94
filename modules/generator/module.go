// Package generator registers the leaf node types: fractal noise in three
// styles and constants.
package generator

import (
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// noiseProperties is shared by every noise style.
func noiseProperties() []registry.PropertyDef {
	d := field.DefaultGeneratorParams()
	return []registry.PropertyDef{
		registry.Integer("seed", d.Seed),
		registry.Number("frequency", d.Frequency),
		registry.Number("lacunarity", d.Lacunarity),
		registry.Number("persistence", d.Persistence),
		registry.Integer("octaves", int64(d.Octaves)),
		registry.QualityProp("quality", document.QualityStandard),
	}
}

func buildNoise(style field.Style) registry.BuildFunc {
	return func(p *registry.Props) []field.Op {
		octaves := p.Int("octaves")
		if octaves < 1 || octaves > field.MaxOctaves {
			p.Warn("octaves", "Octaves must be between 1 and 30; the value is clamped.")
		}
		return []field.Op{field.NewGenerator(field.GeneratorParams{
			Style:       style,
			Seed:        p.Seed("seed"),
			Frequency:   p.Number("frequency"),
			Lacunarity:  p.Number("lacunarity"),
			Persistence: p.Number("persistence"),
			Octaves:     octaves,
			Quality:     p.Quality("quality"),
		})}
	}
}

// Register registers the node types with the registry.
func (m *Module) Register(r *registry.Registry) {
	styles := []struct {
		tag   string
		style field.Style
	}{
		{"perlin", field.StylePerlin},
		{"billow", field.StyleBillow},
		{"ridged", field.StyleRidged},
	}
	for _, s := range styles {
		r.Register(&registry.Definition{
			Type:       s.tag,
			Class:      registry.ClassOperator,
			Outputs:    []field.Kind{field.KindGenerator},
			Properties: noiseProperties(),
			Build:      buildNoise(s.style),
		})
	}

	r.Register(&registry.Definition{
		Type:       "constant",
		Class:      registry.ClassOperator,
		Outputs:    []field.Kind{field.KindConstant},
		Properties: []registry.PropertyDef{registry.Number("value", 0)},
		Build: func(p *registry.Props) []field.Op {
			return []field.Op{field.Constant{Value: p.Number("value")}}
		},
	})
}
