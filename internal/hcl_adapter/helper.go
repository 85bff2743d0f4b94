package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional fields with a static null
// expression over a zero-width range, so a nil check is insufficient.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	if r.End.Byte <= r.Start.Byte {
		return false
	}
	// Bare keywords fail to evaluate without a context; that still counts.
	v, diags := expr.Value(nil)
	return diags.HasErrors() || !v.IsNull()
}
