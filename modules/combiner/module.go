// Package combiner registers the node types that merge two or three inputs.
package combiner

import (
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func binary(tag string, op field.Op) *registry.Definition {
	return &registry.Definition{
		Type:    tag,
		Class:   registry.ClassOperator,
		Inputs:  2,
		Outputs: []field.Kind{op.Kind()},
		Build:   func(*registry.Props) []field.Op { return []field.Op{op} },
	}
}

// Register registers the node types with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(binary("add", field.Add{}))
	r.Register(binary("multiply", field.Multiply{}))
	r.Register(binary("subtract", field.Subtract{}))
	r.Register(binary("min", field.Min{}))
	r.Register(binary("max", field.Max{}))
	r.Register(binary("power", field.Power{}))

	r.Register(&registry.Definition{
		Type:    "select",
		Class:   registry.ClassOperator,
		Inputs:  3,
		Outputs: []field.Kind{field.KindSelect},
		Properties: []registry.PropertyDef{
			registry.Number("min", 0),
			registry.Number("max", 0),
			registry.Number("falloff", 0.2),
		},
		Build: func(p *registry.Props) []field.Op {
			return []field.Op{field.Select{
				Min:     p.Number("min"),
				Max:     p.Number("max"),
				Falloff: p.Number("falloff"),
			}}
		},
	})

	r.Register(&registry.Definition{
		Type:    "blend",
		Class:   registry.ClassOperator,
		Inputs:  3,
		Outputs: []field.Kind{field.KindBlend},
		Build:   func(*registry.Props) []field.Op { return []field.Op{field.Blend{}} },
	})
}
