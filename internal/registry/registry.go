package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/text/cases"
)

// Module is the interface that all node type modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Class distinguishes operators from the marker node types the compiler
// treats specially.
type Class uint8

const (
	// ClassOperator nodes build one field per output.
	ClassOperator Class = iota
	// ClassOutput marks the graph output.
	ClassOutput
	// ClassLayerOutput marks a texture layer.
	ClassLayerOutput
	// ClassPortalIn publishes its input under a name.
	ClassPortalIn
	// ClassPortalOut re-emits a published field.
	ClassPortalOut
)

func (c Class) String() string {
	switch c {
	case ClassOperator:
		return "operator"
	case ClassOutput:
		return "output"
	case ClassLayerOutput:
		return "layer_output"
	case ClassPortalIn:
		return "portal_in"
	case ClassPortalOut:
		return "portal_out"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// PropertyDef declares one property of a node type.
type PropertyDef struct {
	Key  string
	Type document.PropertyType
	// Default is used when the property is missing or does not parse. It
	// must have the cty type of Type.
	Default cty.Value
}

// BuildFunc constructs one field variant per declared output.
type BuildFunc func(p *Props) []field.Op

// Definition describes a node type.
type Definition struct {
	Type  string
	Class Class
	// Inputs is the number of input ports.
	Inputs int
	// Outputs lists the field kind produced at each output port. Markers
	// leave it empty.
	Outputs    []field.Kind
	Properties []PropertyDef
	// Build is required for operators and unused for markers.
	Build BuildFunc
}

// Property returns the declaration for key.
func (d *Definition) Property(key string) (PropertyDef, bool) {
	for _, p := range d.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return PropertyDef{}, false
}

// Registry holds the node type definitions of one application instance.
type Registry struct {
	defs   map[string]*Definition
	folded map[string]*Definition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		defs:   make(map[string]*Definition),
		folded: make(map[string]*Definition),
	}
}

// Register adds a definition. Registering the same type twice is a
// programming error and panics.
func (r *Registry) Register(def *Definition) {
	if def == nil || def.Type == "" {
		panic("node type definition must have a type tag")
	}
	if _, exists := r.defs[def.Type]; exists {
		panic(fmt.Sprintf("node type '%s' already registered", def.Type))
	}
	key := foldTag(def.Type)
	if other, exists := r.folded[key]; exists {
		panic(fmt.Sprintf("node type '%s' collides with '%s' ignoring case", def.Type, other.Type))
	}
	slog.Debug("Registering node type.", "type", def.Type, "class", def.Class.String())
	r.defs[def.Type] = def
	r.folded[key] = def
}

// Lookup returns the definition for tag. Tags match exactly first, then
// ignoring case.
func (r *Registry) Lookup(tag string) (*Definition, bool) {
	if def, ok := r.defs[tag]; ok {
		return def, true
	}
	def, ok := r.folded[foldTag(tag)]
	return def, ok
}

// Types returns every registered tag, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// RegisterAll registers the definitions of every module.
func (r *Registry) RegisterAll(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// foldTag case-folds a type tag. Casers are stateful, so one is made per call.
func foldTag(tag string) string {
	return cases.Fold().String(tag)
}
