package compiler

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/registry"
)

// Options tune a compilation.
type Options struct {
	// DefaultSeed is added to the seed of every generator node.
	DefaultSeed int64
}

// Texture names the texture a layer paints.
type Texture struct {
	Name string
}

// Tiling is the texture repeat of a layer in world units.
type Tiling struct {
	Size    float64
	OffsetX float64
	OffsetZ float64
}

// Layer pairs a weight field with its paint settings.
type Layer struct {
	NodeID   string
	Priority int
	Field    field.Field
	Texture  Texture
	Tiling   Tiling
}

// Result is a compiled graph.
type Result struct {
	Arena *field.Arena
	Root  field.Field
	// Layers are sorted by ascending priority, ties in document order.
	Layers []Layer
	// Portals maps each published portal name to its field.
	Portals     map[string]field.ID
	Diagnostics hcl.Diagnostics
}

// Fields returns the root followed by every layer field.
func (r *Result) Fields() []field.Field {
	fields := make([]field.Field, 0, len(r.Layers)+1)
	fields = append(fields, r.Root)
	for _, l := range r.Layers {
		fields = append(fields, l.Field)
	}
	return fields
}

type outputKey struct {
	node string
	port int
}

type compiler struct {
	doc  *document.Document
	reg  *registry.Registry
	opts Options

	arena   *field.Arena
	defs    map[string]*registry.Definition
	outputs map[outputKey]field.ID
	// owner maps arena entries back to the node that built them.
	owner      map[field.ID]string
	portals    map[string]field.ID
	portalOuts map[string]field.ID
	connected  map[outputKey]*document.Edge
	deferred   []*document.Edge
	defaultGen field.ID

	diags hcl.Diagnostics
}

// Compile builds the field graph of doc. It never returns an error; every
// problem is reported in Result.Diagnostics.
func Compile(ctx context.Context, doc *document.Document, reg *registry.Registry, opts Options) *Result {
	logger := ctxlog.FromContext(ctx)
	if doc == nil {
		doc = &document.Document{}
	}

	c := &compiler{
		doc:        doc,
		reg:        reg,
		opts:       opts,
		arena:      field.NewArena(),
		defs:       make(map[string]*registry.Definition),
		outputs:    make(map[outputKey]field.ID),
		owner:      make(map[field.ID]string),
		portals:    make(map[string]field.ID),
		portalOuts: make(map[string]field.ID),
		connected:  make(map[outputKey]*document.Edge),
		defaultGen: field.NoID,
	}

	c.resolveTypes()
	c.instantiate()
	c.wire()
	c.publishPortals()
	c.resolvePortalOuts()
	c.wireDeferred()
	c.fillUnbound()
	root := c.selectRoot()
	layers := c.extractLayers()

	logger.Debug("Graph compiled.",
		"nodes", len(doc.Nodes),
		"edges", len(doc.Edges),
		"fields", c.arena.Len(),
		"layers", len(layers),
		"portals", len(c.portals),
		"diagnostics", len(c.diags),
	)

	return &Result{
		Arena:       c.arena,
		Root:        root,
		Layers:      layers,
		Portals:     c.portals,
		Diagnostics: c.diags,
	}
}

func (c *compiler) add(sev hcl.DiagnosticSeverity, subject hcl.Range, summary, detail string, args ...any) {
	d := &hcl.Diagnostic{
		Severity: sev,
		Summary:  summary,
		Detail:   fmt.Sprintf(detail, args...),
	}
	if subject.Filename != "" {
		d.Subject = subject.Ptr()
	}
	c.diags = append(c.diags, d)
}

func (c *compiler) errorf(subject hcl.Range, summary, detail string, args ...any) {
	c.add(hcl.DiagError, subject, summary, detail, args...)
}

func (c *compiler) warnf(subject hcl.Range, summary, detail string, args ...any) {
	c.add(hcl.DiagWarning, subject, summary, detail, args...)
}

// defaultGenerator returns the shared fallback leaf, creating it on first use.
func (c *compiler) defaultGenerator() field.ID {
	if c.defaultGen == field.NoID {
		c.defaultGen = c.arena.Add(field.DefaultGenerator()).ID()
	}
	return c.defaultGen
}

func (c *compiler) node(id string) *document.Node {
	n, _ := c.doc.Node(id)
	return n
}

func (c *compiler) props(def *registry.Definition, n *document.Node) *registry.Props {
	p := registry.NewProps(def, n)
	p.SeedOffset = c.opts.DefaultSeed
	p.CheckUnknown()
	return p
}

// resolve returns the field produced at port of a node, if any.
func (c *compiler) resolve(nodeID string, port int) (field.ID, bool) {
	def := c.defs[nodeID]
	if def == nil {
		return field.NoID, false
	}
	switch def.Class {
	case registry.ClassOperator:
		id, ok := c.outputs[outputKey{nodeID, port}]
		return id, ok
	case registry.ClassPortalOut:
		if port != 0 {
			return field.NoID, false
		}
		id, ok := c.portalOuts[nodeID]
		return id, ok
	}
	return field.NoID, false
}

// producer follows the first inbound edge of a marker node to its field.
func (c *compiler) producer(n *document.Node) (field.ID, bool) {
	inbound := c.doc.Inbound(n.ID)
	if len(inbound) == 0 {
		return field.NoID, false
	}
	if len(inbound) > 1 {
		c.warnf(n.DeclRange, "Multiple inputs", "Node %q takes a single input but has %d; the first edge is used.", n.ID, len(inbound))
	}
	e := inbound[0]
	return c.resolve(e.SrcNode, e.SrcPort)
}
