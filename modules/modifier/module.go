// Package modifier registers the single-input node types that reshape a value.
package modifier

import (
	"fmt"

	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func unary(tag string, op field.Op) *registry.Definition {
	return &registry.Definition{
		Type:    tag,
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{op.Kind()},
		Build:   func(*registry.Props) []field.Op { return []field.Op{op} },
	}
}

// Register registers the node types with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(unary("abs", field.Abs{}))
	r.Register(unary("invert", field.Invert{}))
	r.Register(unary("normalize", field.Normalize{}))

	r.Register(&registry.Definition{
		Type:    "scale_bias",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{field.KindScaleBias},
		Properties: []registry.PropertyDef{
			registry.Number("scale", 1),
			registry.Number("bias", 0),
		},
		Build: func(p *registry.Props) []field.Op {
			return []field.Op{field.ScaleBias{Scale: p.Number("scale"), Bias: p.Number("bias")}}
		},
	})

	r.Register(&registry.Definition{
		Type:    "clamp",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{field.KindClamp},
		Properties: []registry.PropertyDef{
			registry.Number("min", -1),
			registry.Number("max", 1),
		},
		Build: func(p *registry.Props) []field.Op {
			return []field.Op{field.ClampOp{Min: p.Number("min"), Max: p.Number("max")}}
		},
	})

	r.Register(&registry.Definition{
		Type:       "curve",
		Class:      registry.ClassOperator,
		Inputs:     1,
		Outputs:    []field.Kind{field.KindCurve},
		Properties: []registry.PropertyDef{registry.CurveProp("points", field.DefaultCurvePoints)},
		Build: func(p *registry.Props) []field.Op {
			points := p.Curve("points")
			c, ok := field.NewCurve(points)
			if !ok {
				p.Warn("points", fmt.Sprintf("A curve needs at least 4 control points, got %d; using the default curve.", len(points)))
			}
			return []field.Op{c}
		},
	})

	r.Register(&registry.Definition{
		Type:    "height_selector",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{field.KindHeightSelector},
		Properties: []registry.PropertyDef{
			registry.Number("min", 0),
			registry.Number("max", 1),
		},
		Build: func(p *registry.Props) []field.Op {
			return []field.Op{field.HeightSelector{Min: p.Number("min"), Max: p.Number("max")}}
		},
	})

	r.Register(&registry.Definition{
		Type:    "cache",
		Class:   registry.ClassOperator,
		Inputs:  1,
		Outputs: []field.Kind{field.KindRegionCache},
		Properties: []registry.PropertyDef{
			registry.Integer("resolution", field.DefaultCacheResolution),
			registry.Number("scale", 1),
		},
		Build: func(p *registry.Props) []field.Op {
			res := p.Int("resolution")
			if res > field.MaxCacheResolution {
				p.Warn("resolution", fmt.Sprintf("Resolution %d exceeds the maximum of %d; the maximum is used.", res, field.MaxCacheResolution))
			}
			return []field.Op{field.NewRegionCache(res, p.Number("scale"))}
		},
	})
}
