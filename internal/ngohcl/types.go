package ngohcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/noisegridgo/internal/document"
)

// PropertyTypeForExpr converts an expression naming a property type (e.g. the
// bare keyword `number`) into a document.PropertyType. JSON documents may
// give the keyword as a string.
func PropertyTypeForExpr(expr hcl.Expression) (document.PropertyType, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a single type keyword such as number, integer, bool, quality, curve or text.",
			Subject:  expr.Range().Ptr(),
		})
		return document.TypeText, diags
	}

	name := traversal.RootName()
	t, ok := document.ParsePropertyType(name)
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a property type.", name),
			Subject:  expr.Range().Ptr(),
		})
	}
	return t, diags
}
