package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/ngohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

func translateNode(ctx context.Context, nb *nodeBlock) (*document.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	node := &document.Node{ID: nb.ID, Type: nb.Type, DeclRange: nb.DefRange}
	for _, pb := range nb.Properties {
		p, pDiags := translateProperty(pb)
		diags = append(diags, pDiags...)
		if pDiags.HasErrors() {
			continue
		}
		node.Properties = append(node.Properties, p)
	}
	ctxlog.FromContext(ctx).Debug("Translated node.", "id", node.ID, "type", node.Type, "properties", len(node.Properties))
	return node, diags
}

func translateProperty(pb *propertyBlock) (document.Property, hcl.Diagnostics) {
	p := document.Property{Key: pb.Key, Type: document.TypeText}
	var diags hcl.Diagnostics

	if isExprDefined(pb.Type) {
		t, tDiags := ngohcl.PropertyTypeForExpr(pb.Type)
		diags = append(diags, tDiags...)
		p.Type = t
	}

	val, vDiags := pb.Value.Value(nil)
	diags = append(diags, vDiags...)
	if vDiags.HasErrors() {
		return p, diags
	}
	s, err := valueString(val)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid property value",
			Detail:   fmt.Sprintf("Property %q: %s.", pb.Key, err),
			Subject:  pb.Value.Range().Ptr(),
		})
		return p, diags
	}
	p.Value = s
	return p, diags
}

// valueString flattens a literal into the string form properties are stored in.
func valueString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("value must be known")
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("value must be a string, number or bool: %w", err)
	}
	return s.AsString(), nil
}

func translateEdge(eb *edgeBlock) *document.Edge {
	e := &document.Edge{SrcNode: eb.From, DstNode: eb.To, DeclRange: eb.DefRange}
	if eb.FromPort != nil {
		e.SrcPort = *eb.FromPort
	}
	if eb.ToPort != nil {
		e.DstPort = *eb.ToPort
	}
	return e
}
