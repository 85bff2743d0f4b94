package registry

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Props reads the properties of one node against its definition's property
// table. Missing values take the declared default. Values that fail to parse
// also take the default and record a warning diagnostic.
type Props struct {
	def  *Definition
	node *document.Node

	// SeedOffset is added to every value read through Seed.
	SeedOffset int64

	diags hcl.Diagnostics
}

// NewProps binds a node to its definition. node may be nil, in which case
// every property reads its default.
func NewProps(def *Definition, node *document.Node) *Props {
	return &Props{def: def, node: node}
}

// Diagnostics returns the warnings recorded so far.
func (p *Props) Diagnostics() hcl.Diagnostics { return p.diags }

// Warn records a warning about key.
func (p *Props) Warn(key, detail string) {
	d := &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  fmt.Sprintf("Property %q of node %q", key, p.nodeID()),
		Detail:   detail,
	}
	if p.node != nil && p.node.DeclRange.Filename != "" {
		d.Subject = p.node.DeclRange.Ptr()
	}
	p.diags = append(p.diags, d)
}

// CheckUnknown records a warning for every node property the definition
// does not declare.
func (p *Props) CheckUnknown() {
	if p.node == nil {
		return
	}
	for _, prop := range p.node.Properties {
		if _, ok := p.def.Property(prop.Key); !ok {
			p.Warn(prop.Key, fmt.Sprintf("Node type '%s' has no such property; it is ignored.", p.def.Type))
		}
	}
}

func (p *Props) nodeID() string {
	if p.node == nil {
		return ""
	}
	return p.node.ID
}

func (p *Props) decl(key string) PropertyDef {
	pd, ok := p.def.Property(key)
	if !ok {
		panic(fmt.Sprintf("node type '%s' reads undeclared property '%s'", p.def.Type, key))
	}
	return pd
}

// Value returns the parsed cty value of key.
func (p *Props) Value(key string) cty.Value {
	pd := p.decl(key)
	if p.node == nil {
		return pd.Default
	}
	prop, ok := p.node.Property(key)
	if !ok {
		return pd.Default
	}
	v, err := document.ParseValue(document.Property{Key: key, Value: prop.Value, Type: pd.Type})
	if err != nil {
		p.Warn(key, fmt.Sprintf("Value %q is not a valid %s: %s. Using the default.", prop.Value, pd.Type, err))
		return pd.Default
	}
	return v
}

// decode converts the value of key into T, falling back to the default.
func decode[T any](p *Props, key string) T {
	var out T
	if err := gocty.FromCtyValue(p.Value(key), &out); err != nil {
		p.Warn(key, fmt.Sprintf("Value is out of range: %s. Using the default.", err))
		out = *new(T)
		_ = gocty.FromCtyValue(p.decl(key).Default, &out)
	}
	return out
}

// Number reads a number property.
func (p *Props) Number(key string) float64 { return decode[float64](p, key) }

// Int reads an integer property.
func (p *Props) Int(key string) int { return decode[int](p, key) }

// Bool reads a bool property.
func (p *Props) Bool(key string) bool { return decode[bool](p, key) }

// Text reads a text property.
func (p *Props) Text(key string) string { return decode[string](p, key) }

// Seed reads an integer property and applies SeedOffset.
func (p *Props) Seed(key string) int64 { return decode[int64](p, key) + p.SeedOffset }

// Quality reads a quality property.
func (p *Props) Quality(key string) field.Quality {
	switch p.Text(key) {
	case document.QualityFast:
		return field.QualityFast
	case document.QualityBest:
		return field.QualityBest
	default:
		return field.QualityStandard
	}
}

// Curve reads a curve property.
func (p *Props) Curve(key string) []field.ControlPoint {
	raw, err := document.CurvePoints(p.Value(key))
	if err != nil {
		p.Warn(key, fmt.Sprintf("Curve could not be decoded: %s.", err))
		return nil
	}
	points := make([]field.ControlPoint, len(raw))
	for i, pt := range raw {
		points[i] = field.ControlPoint{In: pt[0], Out: pt[1]}
	}
	return points
}

// Helpers for building property tables.

// Number declares a number property.
func Number(key string, def float64) PropertyDef {
	return PropertyDef{Key: key, Type: document.TypeNumber, Default: cty.NumberFloatVal(def)}
}

// Integer declares an integer property.
func Integer(key string, def int64) PropertyDef {
	return PropertyDef{Key: key, Type: document.TypeInteger, Default: cty.NumberIntVal(def)}
}

// Text declares a text property.
func Text(key, def string) PropertyDef {
	return PropertyDef{Key: key, Type: document.TypeText, Default: cty.StringVal(def)}
}

// Bool declares a bool property.
func Bool(key string, def bool) PropertyDef {
	return PropertyDef{Key: key, Type: document.TypeBool, Default: cty.BoolVal(def)}
}

// QualityProp declares a quality property.
func QualityProp(key, def string) PropertyDef {
	return PropertyDef{Key: key, Type: document.TypeQuality, Default: cty.StringVal(def)}
}

// CurveProp declares a curve property.
func CurveProp(key string, def []field.ControlPoint) PropertyDef {
	vals := make([]cty.Value, len(def))
	for i, pt := range def {
		vals[i] = cty.ObjectVal(map[string]cty.Value{
			"in":  cty.NumberFloatVal(pt.In),
			"out": cty.NumberFloatVal(pt.Out),
		})
	}
	v := cty.ListValEmpty(document.CurvePointType)
	if len(vals) > 0 {
		v = cty.ListVal(vals)
	}
	return PropertyDef{Key: key, Type: document.TypeCurve, Default: v}
}
