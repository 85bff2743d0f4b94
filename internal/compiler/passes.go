package compiler

import (
	"errors"
	"fmt"

	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

// resolveTypes looks up every node type. Unknown types and duplicate IDs are
// reported and the node contributes nothing.
func (c *compiler) resolveTypes() {
	for _, n := range c.doc.Nodes {
		if _, dup := c.defs[n.ID]; dup {
			c.errorf(n.DeclRange, "Duplicate node ID", "Node ID %q is declared more than once; only the first declaration is used.", n.ID)
			continue
		}
		def, ok := c.reg.Lookup(n.Type)
		if !ok {
			detail := fmt.Sprintf("Node %q has type %q, which is not a known node type.", n.ID, n.Type)
			if s := c.reg.Suggest(n.Type); s != "" {
				detail += fmt.Sprintf(" Did you mean %q?", s)
			}
			c.errorf(n.DeclRange, "Unknown node type", "%s", detail)
			c.defs[n.ID] = nil
			continue
		}
		c.defs[n.ID] = def
	}
}

// instantiate builds one field per output of every operator node.
func (c *compiler) instantiate() {
	for _, n := range c.doc.Nodes {
		def := c.defs[n.ID]
		if def == nil || def.Class != registry.ClassOperator || c.node(n.ID) != n {
			continue
		}
		p := c.props(def, n)
		for port, op := range def.Build(p) {
			id := c.arena.Add(op).ID()
			c.outputs[outputKey{n.ID, port}] = id
			c.owner[id] = n.ID
		}
		c.diags = append(c.diags, p.Diagnostics()...)
	}
}

// wire binds every edge whose source is not a portal output.
func (c *compiler) wire() {
	for _, e := range c.doc.Edges {
		if !c.checkEndpoints(e) {
			continue
		}
		if c.defs[e.SrcNode].Class == registry.ClassPortalOut {
			c.deferred = append(c.deferred, e)
			continue
		}
		c.bindEdge(e)
	}
}

// checkEndpoints reports edges that reference missing nodes or ports that do
// not exist. Edges touching nodes of unknown type are dropped silently; the
// node itself has already been reported.
func (c *compiler) checkEndpoints(e *document.Edge) bool {
	src, srcKnown := c.defs[e.SrcNode]
	dst, dstKnown := c.defs[e.DstNode]
	if !srcKnown {
		c.errorf(e.DeclRange, "Dangling edge", "Edge %s references missing source node %q.", edgeName(e), e.SrcNode)
		return false
	}
	if !dstKnown {
		c.errorf(e.DeclRange, "Dangling edge", "Edge %s references missing destination node %q.", edgeName(e), e.DstNode)
		return false
	}
	if src == nil || dst == nil {
		return false
	}
	if e.DstPort < 0 || e.DstPort >= dst.Inputs {
		c.errorf(e.DeclRange, "Invalid input port", "Node %q (%s) has %d inputs; edge %s targets port %d.", e.DstNode, dst.Type, dst.Inputs, edgeName(e), e.DstPort)
		return false
	}
	outputs := len(src.Outputs)
	if src.Class == registry.ClassPortalOut {
		outputs = 1
	}
	if e.SrcPort < 0 || e.SrcPort >= outputs {
		c.errorf(e.DeclRange, "Invalid output port", "Node %q (%s) has %d outputs; edge %s reads port %d.", e.SrcNode, src.Type, outputs, edgeName(e), e.SrcPort)
		return false
	}
	return true
}

// bindEdge binds the source field into the destination slot of every output
// of the destination node. Marker destinations are resolved by their own
// passes and bind nothing here.
func (c *compiler) bindEdge(e *document.Edge) {
	if c.defs[e.DstNode].Class != registry.ClassOperator {
		return
	}
	src, ok := c.resolve(e.SrcNode, e.SrcPort)
	if !ok {
		c.errorf(e.DeclRange, "Unresolved edge source", "Edge %s: node %q produced no field at port %d.", edgeName(e), e.SrcNode, e.SrcPort)
		return
	}

	// An edge applies to every output of the destination or to none of them.
	type binding struct{ dst, prev field.ID }
	var bound []binding
	for port := 0; ; port++ {
		dst, ok := c.outputs[outputKey{e.DstNode, port}]
		if !ok {
			break
		}
		prev := c.arena.Child(dst, e.DstPort)
		if err := c.arena.Bind(dst, e.DstPort, src); err != nil {
			for _, b := range bound {
				// Restoring a binding that held before cannot form a cycle.
				_ = c.arena.Bind(b.dst, e.DstPort, b.prev)
			}
			if errors.Is(err, field.ErrCycle) {
				c.errorf(e.DeclRange, "Cycle", "Edge %s would make node %q depend on itself; it is ignored.", edgeName(e), e.DstNode)
			} else {
				c.errorf(e.DeclRange, "Invalid edge", "Edge %s: %s.", edgeName(e), err)
			}
			return
		}
		bound = append(bound, binding{dst, prev})
	}

	key := outputKey{e.DstNode, e.DstPort}
	if prev, dup := c.connected[key]; dup {
		c.warnf(e.DeclRange, "Input connected twice", "Input %d of node %q is already fed by %s; edge %s replaces it.", e.DstPort, e.DstNode, edgeName(prev), edgeName(e))
	}
	c.connected[key] = e
}

// publishPortals registers the input of every portal_in under its name. A
// later portal with the same name replaces the earlier one.
func (c *compiler) publishPortals() {
	publisher := make(map[string]string)
	for _, n := range c.nodesOfClass(registry.ClassPortalIn) {
		p := c.props(c.defs[n.ID], n)
		name := p.Text("name")
		c.diags = append(c.diags, p.Diagnostics()...)
		if name == "" {
			c.errorf(n.DeclRange, "Unnamed portal", "Portal input %q has no name and is ignored.", n.ID)
			continue
		}
		src, ok := c.producer(n)
		if !ok {
			c.errorf(n.DeclRange, "Portal without input", "Portal input %q (%q) has no connected input and is ignored.", n.ID, name)
			continue
		}
		if prev, dup := publisher[name]; dup {
			c.warnf(n.DeclRange, "Duplicate portal name", "Portal %q is published by both %q and %q; %q wins.", name, prev, n.ID, n.ID)
		}
		publisher[name] = n.ID
		c.portals[name] = src
	}
}

// resolvePortalOuts points every portal_out at its published field. Unknown
// names fall back to the default generator.
func (c *compiler) resolvePortalOuts() {
	for _, n := range c.nodesOfClass(registry.ClassPortalOut) {
		p := c.props(c.defs[n.ID], n)
		name := p.Text("selected")
		c.diags = append(c.diags, p.Diagnostics()...)
		if id, ok := c.portals[name]; ok && name != "" {
			c.portalOuts[n.ID] = id
			continue
		}
		if name == "" {
			c.warnf(n.DeclRange, "Unselected portal", "Portal output %q selects no portal; the default generator is used.", n.ID)
		} else {
			c.warnf(n.DeclRange, "Unknown portal", "Portal output %q selects %q, which no portal input publishes; the default generator is used.", n.ID, name)
		}
		c.portalOuts[n.ID] = c.defaultGenerator()
	}
}

func (c *compiler) wireDeferred() {
	for _, e := range c.deferred {
		c.bindEdge(e)
	}
}

// fillUnbound binds every empty slot to the shared default generator.
func (c *compiler) fillUnbound() {
	reported := make(map[outputKey]bool)
	n := c.arena.Len()
	for i := range n {
		id := field.ID(i)
		f, _ := c.arena.Field(id)
		for slot := range f.Kind().Arity() {
			if c.arena.Child(id, slot) != field.NoID {
				continue
			}
			// The default generator has no slots, so binding it cannot fail.
			_ = c.arena.Bind(id, slot, c.defaultGenerator())

			owner := c.owner[id]
			key := outputKey{owner, slot}
			if reported[key] {
				continue
			}
			reported[key] = true
			c.warnf(c.declRange(owner), "Unconnected input", "Input %d of node %q is not connected; the default generator is used.", slot, owner)
		}
	}
}

func (c *compiler) nodesOfClass(class registry.Class) []*document.Node {
	var nodes []*document.Node
	for _, n := range c.doc.Nodes {
		if def := c.defs[n.ID]; def != nil && def.Class == class && c.node(n.ID) == n {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func edgeName(e *document.Edge) string {
	return fmt.Sprintf("%s[%d] -> %s[%d]", e.SrcNode, e.SrcPort, e.DstNode, e.DstPort)
}
