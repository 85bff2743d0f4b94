package sampler

import (
	"context"
	"fmt"

	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/field"
)

// budgetEpsilon is the alpha budget below which compositing stops, and the
// total below which weights are split equally.
const budgetEpsilon = 1e-9

// WeightMap holds one weight per layer per cell. The weights of a cell sum to 1.
type WeightMap struct {
	Tile   field.Rect
	Res    int
	Layers int
	// Weights is row-major by cell, then by layer.
	Weights []float64
}

// Cell returns the layer weights of cell (i, j).
func (w *WeightMap) Cell(i, j int) []float64 {
	off := (j*w.Res + i) * w.Layers
	return w.Weights[off : off+w.Layers]
}

// At returns the weight of layer in cell (i, j).
func (w *WeightMap) At(i, j, layer int) float64 { return w.Cell(i, j)[layer] }

// Weights samples every layer field over tile and blends them per cell.
// layers must be sorted by ascending priority.
func (s *Sampler) Weights(ctx context.Context, layers []field.Field, tile field.Rect, res int) (*WeightMap, error) {
	if res < 1 {
		return nil, fmt.Errorf("resolution must be positive, got %d", res)
	}
	n := len(layers)
	wm := &WeightMap{Tile: tile, Res: res, Layers: n, Weights: make([]float64, res*res*n)}
	if n == 0 {
		return wm, nil
	}
	stride := res * n

	err := s.forRows(ctx, res, func(j int) {
		row := wm.Weights[j*stride : (j+1)*stride]
		for i := range res {
			field.EvaluateMany(layers, CellCoord(tile, res, i, j), row[i*n:(i+1)*n])
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sampling layers: %w", err)
	}

	err = s.forRows(ctx, res, func(j int) {
		row := wm.Weights[j*stride : (j+1)*stride]
		for i := range res {
			Composite(row[i*n:(i+1)*n], s.Order)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("blending layers: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Sampled layer weights.", "tile", tile, "res", res, "layers", n, "order", s.Order.String())
	return wm, nil
}

// Composite turns raw layer samples, ordered by ascending priority, into
// alphas summing to 1, in place. Each raw value is mapped from [-1, 1] to
// [0, 1] and clamped. Layers then consume weight x remaining budget of a
// budget of 1 in the given order, stopping once it is spent. The alphas are
// normalized; when they total about 0 every layer gets an equal share.
func Composite(w []float64, order Order) {
	n := len(w)
	if n == 0 {
		return
	}
	for k, v := range w {
		w[k] = field.Clamp((v+1)*0.5, 0, 1)
	}

	budget := 1.0
	for step := range n {
		k := step
		if order == Descending {
			k = n - 1 - step
		}
		if budget <= budgetEpsilon {
			w[k] = 0
			continue
		}
		alpha := w[k] * budget
		budget -= alpha
		w[k] = alpha
	}

	var total float64
	for _, a := range w {
		total += a
	}
	if total <= budgetEpsilon {
		for k := range w {
			w[k] = 1 / float64(n)
		}
		return
	}
	for k := range w {
		w[k] /= total
	}
}
