// Package marker registers the node types the compiler treats specially:
// the graph output, texture layer outputs and portals.
package marker

import (
	"github.com/vk/noisegridgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Type tags of the marker node types.
const (
	Output      = "output"
	LayerOutput = "layer_output"
	PortalIn    = "portal_in"
	PortalOut   = "portal_out"
)

// Register registers the node types with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Definition{
		Type:   Output,
		Class:  registry.ClassOutput,
		Inputs: 1,
	})

	r.Register(&registry.Definition{
		Type:   LayerOutput,
		Class:  registry.ClassLayerOutput,
		Inputs: 1,
		Properties: []registry.PropertyDef{
			registry.Integer("priority", 0),
			registry.Text("texture", ""),
			registry.Number("tile_size", 10),
			registry.Number("tile_offset_x", 0),
			registry.Number("tile_offset_z", 0),
		},
	})

	r.Register(&registry.Definition{
		Type:       PortalIn,
		Class:      registry.ClassPortalIn,
		Inputs:     1,
		Properties: []registry.PropertyDef{registry.Text("name", "")},
	})

	r.Register(&registry.Definition{
		Type:       PortalOut,
		Class:      registry.ClassPortalOut,
		Properties: []registry.PropertyDef{registry.Text("selected", "")},
	})
}
