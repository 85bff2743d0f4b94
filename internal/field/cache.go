package field

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCacheResolution is the grid size used when none is configured.
	DefaultCacheResolution = 256
	// MaxCacheResolution bounds the grid size. Larger requests are clamped.
	MaxCacheResolution = 4096
)

// RegionCache stores a grid of samples of its input over a rectangle at
// Y = 0 and answers lookups inside it by bilinear interpolation. Outside the
// rectangle, off the Y = 0 plane, or before the first Populate, it evaluates
// its input directly.
type RegionCache struct {
	// Resolution is the grid size used when Populate is called with res <= 0.
	Resolution int
	// Scale is the side of the square populated by PopulatePreview.
	Scale float64

	grid atomic.Pointer[cacheGrid]
}

type cacheGrid struct {
	rect   Rect
	res    int
	values []float64
}

// NewRegionCache returns an unpopulated cache. A resolution <= 0 selects
// DefaultCacheResolution; one above MaxCacheResolution is clamped.
func NewRegionCache(resolution int, scale float64) *RegionCache {
	return &RegionCache{Resolution: CacheResolution(resolution), Scale: scale}
}

// CacheResolution normalizes a configured grid size.
func CacheResolution(res int) int {
	if res <= 0 {
		return DefaultCacheResolution
	}
	return min(res, MaxCacheResolution)
}

func (*RegionCache) Kind() Kind { return KindRegionCache }

func (c *RegionCache) invalidate() { c.grid.Store(nil) }

// Populated returns the rectangle and resolution of the current grid.
func (c *RegionCache) Populated() (Rect, int, bool) {
	g := c.grid.Load()
	if g == nil {
		return Rect{}, 0, false
	}
	return g.rect, g.res, true
}

func (c *RegionCache) lookup(p Vec3) (float64, bool) {
	g := c.grid.Load()
	if g == nil || p.Y != 0 || !g.rect.Contains(p.X, p.Z) {
		return 0, false
	}
	last := float64(g.res - 1)
	fx := (p.X - g.rect.MinX) / g.rect.Width() * last
	fz := (p.Z - g.rect.MinZ) / g.rect.Depth() * last
	x0 := min(int(fx), g.res-2)
	z0 := min(int(fz), g.res-2)
	tx := fx - float64(x0)
	tz := fz - float64(z0)

	at := func(i, j int) float64 { return g.values[j*g.res+i] }
	top := Lerp(at(x0, z0), at(x0+1, z0), tx)
	bottom := Lerp(at(x0, z0+1), at(x0+1, z0+1), tx)
	return Lerp(top, bottom, tz), true
}

func (f Field) cache() (*RegionCache, error) {
	c, ok := f.Op().(*RegionCache)
	if !ok {
		return nil, fmt.Errorf("%s: %w", f.Kind(), ErrNotCache)
	}
	return c, nil
}

// Populate samples the cache input over rect on a res x res grid at Y = 0.
// Rows are filled in parallel. The new grid replaces the old one only when
// every row completed; on error the previous state is kept. res <= 0 uses
// the cache's Resolution; res is clamped to [2, MaxCacheResolution].
func (f Field) Populate(ctx context.Context, rect Rect, res int) error {
	c, err := f.cache()
	if err != nil {
		return err
	}
	if rect.Empty() {
		return fmt.Errorf("populate %+v: %w", rect, ErrEmptyRect)
	}
	if res <= 0 {
		res = c.Resolution
	}
	res = min(max(res, 2), MaxCacheResolution)

	input := f.arena.Child(f.id, 0)
	g := &cacheGrid{rect: rect, res: res, values: make([]float64, res*res)}
	stepX := rect.Width() / float64(res-1)
	stepZ := rect.Depth() / float64(res-1)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for j := range res {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			z := rect.MinZ + float64(j)*stepZ
			row := g.values[j*res : (j+1)*res]
			for i := range row {
				row[i] = f.arena.eval(input, Vec3{X: rect.MinX + float64(i)*stepX, Z: z})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("populate region cache: %w", err)
	}
	c.grid.Store(g)
	return nil
}

// PopulatePreview fills the cache over the square [0, Scale] x [0, Scale].
func (f Field) PopulatePreview(ctx context.Context) error {
	c, err := f.cache()
	if err != nil {
		return err
	}
	return f.Populate(ctx, Rect{MaxX: c.Scale, MaxZ: c.Scale}, c.Resolution)
}

// SetCacheResolution changes the default grid size and drops the grid. The
// size is normalized as by NewRegionCache.
func (f Field) SetCacheResolution(res int) error {
	c, err := f.cache()
	if err != nil {
		return err
	}
	c.Resolution = CacheResolution(res)
	c.invalidate()
	return nil
}

// SetCacheScale changes the preview extent and drops the grid.
func (f Field) SetCacheScale(scale float64) error {
	c, err := f.cache()
	if err != nil {
		return err
	}
	c.Scale = scale
	c.invalidate()
	return nil
}
