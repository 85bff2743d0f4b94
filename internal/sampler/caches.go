package sampler

import (
	"context"
	"fmt"

	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/field"
)

// PopulateReachableCaches populates every region cache reachable from fields
// over rect at resolution res, once each. Inner caches are populated before
// the caches that read through them. It returns the number of caches
// populated. Call it once per generation request, after compiling and before
// sampling any tile.
func PopulateReachableCaches(ctx context.Context, fields []field.Field, rect field.Rect, res int) (int, error) {
	logger := ctxlog.FromContext(ctx)

	type key struct {
		arena *field.Arena
		id    field.ID
	}
	seen := make(map[key]bool)
	var caches []field.Field
	for _, root := range fields {
		root.Walk(func(f field.Field) {
			k := key{f.Arena(), f.ID()}
			if seen[k] {
				return
			}
			seen[k] = true
			if f.Kind() == field.KindRegionCache {
				caches = append(caches, f)
			}
		})
	}

	for i, c := range caches {
		if err := c.Populate(ctx, rect, res); err != nil {
			return i, fmt.Errorf("populating cache %d of %d: %w", i+1, len(caches), err)
		}
		logger.Debug("Populated region cache.", "id", c.ID(), "rect", rect, "res", res)
	}
	return len(caches), nil
}
