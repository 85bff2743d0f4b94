package document

import (
	"github.com/hashicorp/hcl/v2"
)

// Document is an authored terrain graph.
type Document struct {
	// Nodes keeps document order, which the compiler relies on for
	// deterministic root selection.
	Nodes []*Node
	Edges []*Edge
	// OutputNodeID names the designated output node. It may be empty.
	OutputNodeID string
}

// Node is one authored node.
type Node struct {
	ID         string
	Type       string
	Properties []Property
	// DeclRange is the source range of the node declaration when the document
	// was read from a file. It is used as the subject of diagnostics.
	DeclRange hcl.Range
}

// Edge connects output port SrcPort of SrcNode to input port DstPort of DstNode.
type Edge struct {
	SrcNode   string
	SrcPort   int
	DstNode   string
	DstPort   int
	DeclRange hcl.Range
}

// Property is a single key/value pair stored as a string tagged with its
// declared type.
type Property struct {
	Key   string
	Value string
	Type  PropertyType
}

// Node returns the node with the given id.
func (d *Document) Node(id string) (*Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Inbound returns the edges whose destination is the given node, in document order.
func (d *Document) Inbound(id string) []*Edge {
	var edges []*Edge
	for _, e := range d.Edges {
		if e.DstNode == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// HasOutbound reports whether any edge leaves the given node.
func (d *Document) HasOutbound(id string) bool {
	for _, e := range d.Edges {
		if e.SrcNode == id {
			return true
		}
	}
	return false
}

// Property returns the property with the given key. When a key is declared
// more than once the last declaration wins.
func (n *Node) Property(key string) (Property, bool) {
	var found Property
	ok := false
	for _, p := range n.Properties {
		if p.Key == key {
			found = p
			ok = true
		}
	}
	return found, ok
}

// SetProperty replaces or appends a property.
func (n *Node) SetProperty(p Property) {
	for i := range n.Properties {
		if n.Properties[i].Key == p.Key {
			n.Properties[i] = p
			return
		}
	}
	n.Properties = append(n.Properties, p)
}
