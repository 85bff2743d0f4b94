package registry

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/zclconf/go-cty/cty"
)

func constantDef(tag string) *Definition {
	return &Definition{
		Type:       tag,
		Class:      ClassOperator,
		Outputs:    []field.Kind{field.KindConstant},
		Properties: []PropertyDef{Number("value", 1.5), Integer("count", 3), Bool("flag", true), Text("label", "x")},
		Build: func(p *Props) []field.Op {
			return []field.Op{field.Constant{Value: p.Number("value")}}
		},
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(constantDef("constant"))
	assert.Panics(t, func() { r.Register(constantDef("constant")) })
	assert.Panics(t, func() { r.Register(constantDef("CONSTANT")) })
	assert.Panics(t, func() { r.Register(&Definition{}) })
}

func TestLookup_FoldsCase(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(constantDef("scale_bias"))

	def, ok := r.Lookup("Scale_Bias")
	require.True(t, ok)
	assert.Equal(t, "scale_bias", def.Type)

	_, ok = r.Lookup("scalebias")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	r := New()
	for _, tag := range []string{"perlin", "billow", "ridged", "normalize"} {
		r.Register(constantDef(tag))
	}

	assert.Equal(t, "perlin", r.Suggest("perlyn"))
	assert.Equal(t, "normalize", r.Suggest("Normalise"))
	assert.Equal(t, "", r.Suggest("completely_different"))
}

func TestValidate_ReportsMissingKinds(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register(constantDef("constant"))
	r.Register(&Definition{Type: "broken", Class: ClassOperator, Inputs: 1, Outputs: []field.Kind{field.KindAdd}})
	r.Register(&Definition{Type: "bad_marker", Class: ClassOutput, Outputs: []field.Kind{field.KindAbs}})
	r.Register(&Definition{Type: "bad_default", Class: ClassOutput, Properties: []PropertyDef{
		{Key: "k", Type: document.TypeNumber, Default: cty.StringVal("1")},
	}})

	err := r.Validate(context.Background())
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "'broken': operator has no constructor")
	assert.Contains(t, msg, "'broken': 1 inputs but add takes 2")
	assert.Contains(t, msg, "'bad_marker': output marker must not declare outputs")
	assert.Contains(t, msg, "'bad_default', property 'k'")
	assert.Contains(t, msg, "field kind 'generator' is not produced")
	assert.NotContains(t, msg, "field kind 'constant'")
}

func TestProps_DefaultsAndParsing(t *testing.T) {
	t.Parallel()

	def := constantDef("constant")
	node := &document.Node{
		ID:        "n1",
		Type:      "constant",
		DeclRange: hcl.Range{Filename: "graph.hcl", Start: hcl.Pos{Line: 3}},
		Properties: []document.Property{
			{Key: "value", Value: "0.25", Type: document.TypeNumber},
			{Key: "count", Value: "2.5", Type: document.TypeInteger},
			{Key: "colour", Value: "red"},
		},
	}
	p := NewProps(def, node)

	assert.Equal(t, 0.25, p.Number("value"))
	assert.Equal(t, 3, p.Int("count"))
	assert.True(t, p.Bool("flag"))
	assert.Equal(t, "x", p.Text("label"))
	p.CheckUnknown()

	diags := p.Diagnostics()
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, hcl.DiagWarning, d.Severity)
		require.NotNil(t, d.Subject)
		assert.Equal(t, "graph.hcl", d.Subject.Filename)
	}
	assert.Contains(t, diags[0].Summary, `"count"`)
	assert.Contains(t, diags[1].Summary, `"colour"`)

	assert.Panics(t, func() { p.Number("undeclared") })
}

func TestProps_NilNodeReadsDefaults(t *testing.T) {
	t.Parallel()

	p := NewProps(constantDef("constant"), nil)
	assert.Equal(t, 1.5, p.Number("value"))
	p.CheckUnknown()
	assert.Empty(t, p.Diagnostics())
}
