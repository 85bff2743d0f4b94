package field

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedGenerator(t *testing.T, res int) (cache, input Field) {
	t.Helper()
	a := NewArena()
	input = a.Add(NewGenerator(DefaultGeneratorParams()))
	cache = a.Add(NewRegionCache(res, 4))
	require.NoError(t, cache.Bind(0, input))
	return cache, input
}

func TestRegionCache_PassThroughWhenEmpty(t *testing.T) {
	t.Parallel()

	cache, input := newCachedGenerator(t, 16)
	p := Vec3{X: 1.3, Z: 2.7}
	assert.Equal(t, input.Evaluate(p), cache.Evaluate(p))
}

func TestRegionCache_ExactAtGridPoints(t *testing.T) {
	t.Parallel()

	cache, input := newCachedGenerator(t, 9)
	rect := Rect{MinX: -2, MinZ: 1, MaxX: 6, MaxZ: 9}
	require.NoError(t, cache.Populate(context.Background(), rect, 0))

	got, res, ok := cache.Op().(*RegionCache).Populated()
	require.True(t, ok)
	assert.Equal(t, rect, got)
	assert.Equal(t, 9, res)

	for j := range 9 {
		for i := range 9 {
			p := Vec3{X: rect.MinX + float64(i), Z: rect.MinZ + float64(j)}
			assert.InDelta(t, input.Evaluate(p), cache.Evaluate(p), 1e-12)
		}
	}
}

func TestRegionCache_InterpolatesBetweenCorners(t *testing.T) {
	t.Parallel()

	cache, input := newCachedGenerator(t, 5)
	require.NoError(t, cache.Populate(context.Background(), Rect{MaxX: 4, MaxZ: 4}, 5))

	p := Vec3{X: 1.25, Z: 2.5}
	corners := []float64{
		input.Evaluate(Vec3{X: 1, Z: 2}),
		input.Evaluate(Vec3{X: 2, Z: 2}),
		input.Evaluate(Vec3{X: 1, Z: 3}),
		input.Evaluate(Vec3{X: 2, Z: 3}),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		lo, hi = math.Min(lo, c), math.Max(hi, c)
	}
	v := cache.Evaluate(p)
	assert.GreaterOrEqual(t, v, lo-1e-12)
	assert.LessOrEqual(t, v, hi+1e-12)

	outside := Vec3{X: 4.5, Z: 1}
	assert.Equal(t, input.Evaluate(outside), cache.Evaluate(outside))
}

func TestRegionCache_Invalidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(t *testing.T, cache Field)
	}{
		{name: "rebind input", mutate: func(t *testing.T, cache Field) {
			require.NoError(t, cache.Bind(0, cache.Arena().Add(Constant{Value: 1})))
		}},
		{name: "set resolution", mutate: func(t *testing.T, cache Field) {
			require.NoError(t, cache.SetCacheResolution(32))
		}},
		{name: "set scale", mutate: func(t *testing.T, cache Field) {
			require.NoError(t, cache.SetCacheScale(10))
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cache, _ := newCachedGenerator(t, 8)
			require.NoError(t, cache.PopulatePreview(context.Background()))
			_, _, ok := cache.Op().(*RegionCache).Populated()
			require.True(t, ok)

			tc.mutate(t, cache)
			_, _, ok = cache.Op().(*RegionCache).Populated()
			assert.False(t, ok)
		})
	}
}

func TestRegionCache_CancelledPopulateKeepsState(t *testing.T) {
	t.Parallel()

	cache, _ := newCachedGenerator(t, 8)
	first := Rect{MaxX: 1, MaxZ: 1}
	require.NoError(t, cache.Populate(context.Background(), first, 8))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := cache.Populate(ctx, Rect{MaxX: 100, MaxZ: 100}, 64)
	require.ErrorIs(t, err, context.Canceled)

	got, res, ok := cache.Op().(*RegionCache).Populated()
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 8, res)
}

func TestRegionCache_Errors(t *testing.T) {
	t.Parallel()

	a := NewArena()
	c := a.Add(Constant{Value: 1})
	require.ErrorIs(t, c.Populate(context.Background(), Rect{MaxX: 1, MaxZ: 1}, 4), ErrNotCache)
	require.ErrorIs(t, c.SetCacheResolution(4), ErrNotCache)

	cache, _ := newCachedGenerator(t, 8)
	require.ErrorIs(t, cache.Populate(context.Background(), Rect{MinX: 1, MaxX: 1, MaxZ: 1}, 4), ErrEmptyRect)
}

func TestCacheResolution_Bounds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero selects default", in: 0, want: DefaultCacheResolution},
		{name: "negative selects default", in: -3, want: DefaultCacheResolution},
		{name: "in range kept", in: 64, want: 64},
		{name: "maximum kept", in: MaxCacheResolution, want: MaxCacheResolution},
		{name: "overflowing square clamped", in: 1 << 32, want: MaxCacheResolution},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, CacheResolution(tc.in))
			assert.Equal(t, tc.want, NewRegionCache(tc.in, 1).Resolution)

			cache, _ := newCachedGenerator(t, 8)
			require.NoError(t, cache.SetCacheResolution(tc.in))
			assert.Equal(t, tc.want, cache.Op().(*RegionCache).Resolution)
		})
	}
}

func TestRegionCache_OffPlaneReadsInput(t *testing.T) {
	t.Parallel()

	cache, input := newCachedGenerator(t, 5)
	require.NoError(t, cache.Populate(context.Background(), Rect{MaxX: 4, MaxZ: 4}, 0))

	for _, p := range []Vec3{{X: 1.3, Y: 0.5, Z: 2.1}, {X: 3, Y: -2, Z: 3}} {
		assert.Equal(t, input.Evaluate(p), cache.Evaluate(p), "at %+v", p)
	}
	onPlane := Vec3{X: 1, Z: 2}
	assert.InDelta(t, input.Evaluate(onPlane), cache.Evaluate(onPlane), 1e-12)
}
