package sampler

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/field"
	"golang.org/x/sync/errgroup"
)

// Order is the direction in which layers consume the per-cell alpha budget.
type Order uint8

const (
	// Descending lets the highest priority layer consume the budget first.
	Descending Order = iota
	// Ascending lets the lowest priority layer consume the budget first.
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// ParseOrder reads "ascending" or "descending".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return Ascending, nil
	case "descending", "desc", "":
		return Descending, nil
	}
	return Descending, fmt.Errorf("unknown blend order %q, expected ascending or descending", s)
}

// Sampler samples fields over tiles.
type Sampler struct {
	// Workers bounds the number of rows processed at once. Zero means
	// GOMAXPROCS.
	Workers int
	// Order is the layer compositing direction.
	Order Order
}

func (s *Sampler) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// forRows runs fn for every row index in parallel and waits for all of them.
func (s *Sampler) forRows(ctx context.Context, res int, fn func(j int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for j := range res {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(j)
			return nil
		})
	}
	return g.Wait()
}

// CellCoord maps grid cell (i, j) to its sampling coordinate. Edges are
// inclusive; a single-cell grid samples the tile centre.
func CellCoord(tile field.Rect, res, i, j int) field.Vec3 {
	if res <= 1 {
		return field.Vec3{X: (tile.MinX + tile.MaxX) / 2, Z: (tile.MinZ + tile.MaxZ) / 2}
	}
	last := float64(res - 1)
	return field.Vec3{
		X: tile.MinX + float64(i)*tile.Width()/last,
		Z: tile.MinZ + float64(j)*tile.Depth()/last,
	}
}

// Grid is a row-major res x res height grid.
type Grid struct {
	Tile   field.Rect
	Res    int
	Values []float64
}

// At returns the value of cell (i, j).
func (g *Grid) At(i, j int) float64 { return g.Values[j*g.Res+i] }

// Heights samples root over tile. Raw values in [-1, 1] are mapped to [0, 1]
// without clamping, so out-of-range authoring stays visible.
func (s *Sampler) Heights(ctx context.Context, root field.Field, tile field.Rect, res int) (*Grid, error) {
	if res < 1 {
		return nil, fmt.Errorf("resolution must be positive, got %d", res)
	}
	grid := &Grid{Tile: tile, Res: res, Values: make([]float64, res*res)}

	err := s.forRows(ctx, res, func(j int) {
		row := grid.Values[j*res : (j+1)*res]
		for i := range row {
			row[i] = root.Evaluate(CellCoord(tile, res, i, j))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sampling heights: %w", err)
	}

	err = s.forRows(ctx, res, func(j int) {
		row := grid.Values[j*res : (j+1)*res]
		for i, v := range row {
			row[i] = (v + 1) * 0.5
		}
	})
	if err != nil {
		return nil, fmt.Errorf("normalizing heights: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Sampled heights.", "tile", tile, "res", res)
	return grid, nil
}
