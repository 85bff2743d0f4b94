package compiler

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

func (c *compiler) declRange(nodeID string) hcl.Range {
	if n := c.node(nodeID); n != nil {
		return n.DeclRange
	}
	return hcl.Range{}
}

// selectRoot picks the field the height grid is sampled from. The named
// output node wins; otherwise the first field-producing node without outgoing
// edges; otherwise the first node. A choice that yields no field falls back to the
// default generator.
func (c *compiler) selectRoot() field.Field {
	n := c.rootNode()
	if n == nil {
		c.warnf(hcl.Range{}, "Empty graph", "The graph has no nodes; the default generator is used as output.")
		return c.field(c.defaultGenerator())
	}

	var (
		id field.ID
		ok bool
	)
	if def := c.defs[n.ID]; def != nil && def.Class == registry.ClassOutput {
		id, ok = c.producer(n)
	} else {
		id, ok = c.resolve(n.ID, 0)
	}
	if !ok {
		c.warnf(n.DeclRange, "No output field", "Output node %q produces no field; the default generator is used as output.", n.ID)
		id = c.defaultGenerator()
	}
	return c.field(id)
}

func (c *compiler) rootNode() *document.Node {
	if name := c.doc.OutputNodeID; name != "" {
		n := c.node(name)
		switch {
		case n == nil:
			c.errorf(hcl.Range{}, "Unknown output node", "The graph names %q as output, but no such node exists.", name)
		case c.defs[name] == nil || c.defs[name].Class != registry.ClassOutput:
			c.errorf(n.DeclRange, "Invalid output node", "The graph names %q as output, but it is not an output node.", name)
		default:
			return n
		}
	}
	// Layer markers and portal inputs never yield a field, so a sink of
	// that kind is passed over.
	for _, n := range c.doc.Nodes {
		if !c.doc.HasOutbound(n.ID) && c.yieldsField(n.ID) {
			return n
		}
	}
	if len(c.doc.Nodes) > 0 {
		return c.doc.Nodes[0]
	}
	return nil
}

// extractLayers pairs every layer marker with its input field and paint
// settings, sorted by priority.
func (c *compiler) extractLayers() []Layer {
	var layers []Layer
	for _, n := range c.nodesOfClass(registry.ClassLayerOutput) {
		p := c.props(c.defs[n.ID], n)
		id, ok := c.producer(n)
		if !ok {
			c.warnf(n.DeclRange, "Layer without input", "Layer %q has no connected input; the default generator is used.", n.ID)
			id = c.defaultGenerator()
		}
		layers = append(layers, Layer{
			NodeID:   n.ID,
			Priority: p.Int("priority"),
			Field:    c.field(id),
			Texture:  Texture{Name: p.Text("texture")},
			Tiling: Tiling{
				Size:    p.Number("tile_size"),
				OffsetX: p.Number("tile_offset_x"),
				OffsetZ: p.Number("tile_offset_z"),
			},
		})
		c.diags = append(c.diags, p.Diagnostics()...)
	}
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Priority < layers[j].Priority })
	return layers
}

func (c *compiler) field(id field.ID) field.Field {
	f, _ := c.arena.Field(id)
	return f
}

func (c *compiler) yieldsField(nodeID string) bool {
	def := c.defs[nodeID]
	if def == nil {
		return false
	}
	switch def.Class {
	case registry.ClassOperator, registry.ClassOutput, registry.ClassPortalOut:
		return true
	}
	return false
}
