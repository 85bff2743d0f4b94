package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/field"
)

// Validate performs a strict parity check between the registered node types
// and the field package. Every field kind must be produced by at least one
// operator, every operator must have a constructor, and every property
// default must match its declared type.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	covered := make(map[field.Kind]bool)
	for _, tag := range r.Types() {
		def := r.defs[tag]
		switch def.Class {
		case ClassOperator:
			if def.Build == nil {
				errs = append(errs, fmt.Sprintf("node type '%s': operator has no constructor", tag))
			}
			if len(def.Outputs) == 0 {
				errs = append(errs, fmt.Sprintf("node type '%s': operator declares no outputs", tag))
			}
			for _, k := range def.Outputs {
				if def.Inputs != k.Arity() {
					errs = append(errs, fmt.Sprintf("node type '%s': %d inputs but %s takes %d", tag, def.Inputs, k, k.Arity()))
				}
				covered[k] = true
			}
		default:
			if len(def.Outputs) > 0 {
				errs = append(errs, fmt.Sprintf("node type '%s': %s marker must not declare outputs", tag, def.Class))
			}
		}

		for _, p := range def.Properties {
			if p.Default.IsNull() {
				continue
			}
			if want := p.Type.CtyType(); !p.Default.Type().Equals(want) {
				errs = append(errs, fmt.Sprintf("node type '%s', property '%s': default is %s but type %s requires %s",
					tag, p.Key, p.Default.Type().FriendlyName(), p.Type, want.FriendlyName()))
			}
		}
	}

	for _, k := range field.Kinds() {
		if !covered[k] {
			errs = append(errs, fmt.Sprintf("field kind '%s' is not produced by any node type", k))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "node_types", len(r.defs))
	return nil
}
