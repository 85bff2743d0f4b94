// Package terrain registers the terrain-shaping node types: erosion, beach,
// sediment and slope. Beach and sediment have two outputs each.
package terrain

import (
	"fmt"

	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Output ports of the multi-output node types.
const (
	BeachHeight = 0
	BeachSand   = 1

	SedimentCliff    = 0
	SedimentSediment = 1
)

// Register registers the node types with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Definition{
		Type:    "erosion",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{field.KindErosion},
		Properties: []registry.PropertyDef{
			registry.Number("sample_distance", 0.05),
			registry.Number("intensity", 0.5),
			registry.Integer("iterations", 1),
		},
		Build: func(p *registry.Props) []field.Op {
			iters := p.Int("iterations")
			if iters > field.MaxErosionIterations {
				p.Warn("iterations", fmt.Sprintf("At most %d iterations are applied.", field.MaxErosionIterations))
			}
			return []field.Op{field.Erosion{
				SampleDistance: p.Number("sample_distance"),
				Intensity:      p.Number("intensity"),
				Iterations:     iters,
			}}
		},
	})

	r.Register(&registry.Definition{
		Type:    "beach",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{BeachHeight: field.KindBeach, BeachSand: field.KindBeachSand},
		Properties: []registry.PropertyDef{
			registry.Number("water_level", 0),
			registry.Number("beach_size", 0.05),
			registry.Number("blur_radius", 0),
		},
		Build: func(p *registry.Props) []field.Op {
			water, size := p.Number("water_level"), p.Number("beach_size")
			return []field.Op{
				BeachHeight: field.Beach{WaterLevel: water, BeachSize: size},
				BeachSand:   field.BeachSand{WaterLevel: water, BeachSize: size, BlurRadius: p.Number("blur_radius")},
			}
		},
	})

	r.Register(&registry.Definition{
		Type:    "sediment",
		Class:   registry.ClassOperator,
		Inputs:  2,
		Outputs: []field.Kind{SedimentCliff: field.KindSedimentCliff, SedimentSediment: field.KindSedimentSediment},
		Properties: []registry.PropertyDef{
			registry.Number("cliff_threshold", 0.01),
			registry.Number("sediment_threshold", 0.01),
			registry.Number("smoothing", 0.05),
		},
		Build: func(p *registry.Props) []field.Op {
			smoothing := p.Number("smoothing")
			return []field.Op{
				SedimentCliff:    field.SedimentCliff{Threshold: p.Number("cliff_threshold"), Smoothing: smoothing},
				SedimentSediment: field.SedimentSediment{Threshold: p.Number("sediment_threshold"), Smoothing: smoothing},
			}
		},
	})

	r.Register(&registry.Definition{
		Type:    "slope",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{field.KindSlope},
		Properties: []registry.PropertyDef{
			registry.Number("sample_distance", 0.05),
			registry.Number("height_scale", 1),
			registry.Number("min_angle", 0),
			registry.Number("max_angle", 45),
			registry.Number("min_smoothing", 0),
			registry.Number("max_smoothing", 5),
			registry.Text("mode", "mask"),
		},
		Build: func(p *registry.Props) []field.Op {
			mode := field.SlopeMask
			switch m := p.Text("mode"); m {
			case "mask":
			case "scaled":
				mode = field.SlopeScaled
			default:
				p.Warn("mode", fmt.Sprintf("Unknown slope mode %q; expected mask or scaled.", m))
			}
			return []field.Op{field.Slope{
				SampleDistance: p.Number("sample_distance"),
				HeightScale:    p.Number("height_scale"),
				MinAngle:       p.Number("min_angle"),
				MaxAngle:       p.Number("max_angle"),
				MinSmoothing:   p.Number("min_smoothing"),
				MaxSmoothing:   p.Number("max_smoothing"),
				Mode:           mode,
			}}
		},
	})
}
