package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/noisegridgo/internal/compiler"
	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/export"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/sampler"
)

// Tile is one exported square of the world.
type Tile struct {
	X, Z int
	Rect field.Rect
}

// Tiles splits the world into tiles of TileSize, row by row. Tiles on the
// far edges are clipped to the world.
func (c *Config) Tiles() []Tile {
	world := c.World()
	n := max(1, int(math.Ceil(c.WorldSize/c.TileSize-1e-9)))
	tiles := make([]Tile, 0, n*n)
	for z := range n {
		for x := range n {
			tiles = append(tiles, Tile{X: x, Z: z, Rect: field.Rect{
				MinX: float64(x) * c.TileSize,
				MinZ: float64(z) * c.TileSize,
				MaxX: math.Min(float64(x+1)*c.TileSize, world.MaxX),
				MaxZ: math.Min(float64(z+1)*c.TileSize, world.MaxZ),
			}})
		}
	}
	return tiles
}

// tileFiles are the images written for one tile, relative to the output dir.
type tileFiles struct {
	Tile    Tile
	Heights string
	Weights []string
}

// Run executes one generation request: load and compile the graph, populate
// region caches over the world, then sample and export every tile.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthcheckServer()
	defer a.closeHealthcheckServer()

	doc, err := a.loader.Load(ctx, a.config.GraphPaths...)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	a.logger.Info("Graph loaded.", "nodes", len(doc.Nodes), "edges", len(doc.Edges))

	result := compiler.Compile(ctx, doc, a.registry, compiler.Options{DefaultSeed: a.config.Seed})
	a.logDiagnostics(result.Diagnostics)
	a.logger.Info("Graph compiled.", "fields", result.Arena.Len(), "layers", len(result.Layers), "portals", len(result.Portals))

	n, err := sampler.PopulateReachableCaches(ctx, result.Fields(), a.config.World(), a.config.CacheResolution)
	if err != nil {
		return fmt.Errorf("failed to populate region caches: %w", err)
	}
	a.logger.Debug("Region caches populated.", "count", n)

	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	s := &sampler.Sampler{Workers: a.config.WorkerCount, Order: a.config.BlendOrder}
	layers := make([]field.Field, len(result.Layers))
	for i, l := range result.Layers {
		layers[i] = l.Field
	}

	tiles := a.config.Tiles()
	a.logger.Info("🚀 Sampling tiles...", "count", len(tiles), "resolution", a.config.Resolution, "blend_order", a.config.BlendOrder)
	written := make([]tileFiles, 0, len(tiles))
	for _, t := range tiles {
		files, err := a.generateTile(ctx, s, result.Root, layers, t)
		if err != nil {
			return fmt.Errorf("tile %d,%d: %w", t.X, t.Z, err)
		}
		written = append(written, files)
	}

	if err := a.writeFile(ManifestName, func(w io.Writer) error {
		return writeManifest(w, a.config, result.Layers, written)
	}); err != nil {
		return err
	}
	a.logger.Info("🏁 Generation finished.", "out_dir", a.config.OutDir, "tiles", len(written))
	return nil
}

// generateTile runs both sampling phases for one tile and writes its images.
func (a *App) generateTile(ctx context.Context, s *sampler.Sampler, root field.Field, layers []field.Field, t Tile) (tileFiles, error) {
	logger := ctxlog.FromContext(ctx).With("tile_x", t.X, "tile_z", t.Z)
	files := tileFiles{Tile: t}

	heights, err := s.Heights(ctx, root, t.Rect, a.config.Resolution)
	if err != nil {
		return files, err
	}
	files.Heights = fmt.Sprintf("heights_%d_%d%s", t.X, t.Z, a.config.Format.Ext())
	if err := a.writeFile(files.Heights, func(w io.Writer) error {
		return export.WriteHeights(w, heights, a.config.Format)
	}); err != nil {
		return files, err
	}

	if len(layers) > 0 {
		weights, err := s.Weights(ctx, layers, t.Rect, a.config.Resolution)
		if err != nil {
			return files, err
		}
		for k, img := range export.WeightImages(weights) {
			name := fmt.Sprintf("weights_%d_%d_%d.png", t.X, t.Z, k)
			if err := a.writeFile(name, func(w io.Writer) error {
				return export.WriteWeights(w, img)
			}); err != nil {
				return files, err
			}
			files.Weights = append(files.Weights, name)
		}
	}
	logger.Debug("Tile written.", "heights", files.Heights, "weight_images", len(files.Weights))
	return files, nil
}

// writeFile creates name under the output directory and fills it with fn.
func (a *App) writeFile(name string, fn func(io.Writer) error) (err error) {
	path := filepath.Join(a.config.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// logDiagnostics reports compiler diagnostics. Compilation always produces a
// result, so none of them stop the run.
func (a *App) logDiagnostics(diags hcl.Diagnostics) {
	for _, d := range diags {
		level := slog.LevelWarn
		if d.Severity == hcl.DiagError {
			level = slog.LevelError
		}
		attrs := []any{"summary", d.Summary, "detail", d.Detail}
		if d.Subject != nil {
			attrs = append(attrs, "subject", d.Subject.String())
		}
		a.logger.Log(a.ctx, level, "Graph diagnostic.", attrs...)
	}
	if len(diags) > 0 {
		a.logger.Warn("Graph compiled with diagnostics.", "count", len(diags), "errors", diags.HasErrors())
	}
}
