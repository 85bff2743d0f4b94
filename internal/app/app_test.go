package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/noisegridgo/internal/export"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/hcl_adapter"
	"github.com/vk/noisegridgo/internal/registry"
	"github.com/vk/noisegridgo/internal/sampler"
	"github.com/vk/noisegridgo/modules/generator"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// setupAppTest creates an app over graph, written to a temp dir, with output
// going to another temp dir.
func setupAppTest(t *testing.T, graph string, cfg Config, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.hcl")
	require.NoError(t, os.WriteFile(graphPath, []byte(graph), 0o600))

	cfg.GraphPaths = []string{graphPath}
	cfg.OutDir = filepath.Join(dir, "out")
	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := NewApp(logBuffer, config, hcl_adapter.NewLoader(), modules...)

	t.Cleanup(func() {
		if os.Getenv("NGGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}

const layeredGraph = `
graph {
  output = "out"
}

node "base" {
  type = "constant"
  property "value" {
    type  = number
    value = "0.4"
  }
}
node "norm" { type = "normalize" }
node "clip" { type = "clamp" }
node "out" { type = "output" }

node "full" {
  type = "constant"
  property "value" {
    type  = number
    value = "1"
  }
}
node "empty" {
  type = "constant"
  property "value" {
    type  = number
    value = "-1"
  }
}
node "grass" {
  type = "layer_output"
  property "texture" {
    value = "grass.png"
  }
}
node "rock" {
  type = "layer_output"
  property "priority" {
    type  = integer
    value = "1"
  }
}

edge "base" "norm" {}
edge "norm" "clip" {}
edge "clip" "out" {}
edge "full" "grass" {}
edge "empty" "rock" {}
`

type manifestLayer struct {
	Name    string   `hcl:"name,label"`
	Image   int      `hcl:"image"`
	Channel string   `hcl:"channel"`
	Remain  hcl.Body `hcl:",remain"`
}

type manifestTile struct {
	X       string   `hcl:"x,label"`
	Z       string   `hcl:"z,label"`
	Heights string   `hcl:"heights"`
	Weights []string `hcl:"weights"`
	Remain  hcl.Body `hcl:",remain"`
}

type manifest struct {
	Layers []manifestLayer `hcl:"layer,block"`
	Tiles  []manifestTile  `hcl:"tile,block"`
	Remain hcl.Body        `hcl:",remain"`
}

func readManifest(t *testing.T, dir string) manifest {
	t.Helper()
	f, diags := hclparse.NewParser().ParseHCLFile(filepath.Join(dir, ManifestName))
	require.False(t, diags.HasErrors(), diags.Error())
	var m manifest
	diags = gohcl.DecodeBody(f.Body, nil, &m)
	require.False(t, diags.HasErrors(), diags.Error())
	return m
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRun_WritesTilesAndManifest(t *testing.T) {
	t.Parallel()

	a, logs := setupAppTest(t, layeredGraph, Config{WorldSize: 2, TileSize: 1, Resolution: 3})
	require.NoError(t, a.Run(context.Background()))

	out := a.config.OutDir
	m := readManifest(t, out)
	require.Len(t, m.Tiles, 4)
	require.Len(t, m.Layers, 2)
	assert.Equal(t, "grass", m.Layers[0].Name)
	assert.Equal(t, "r", m.Layers[0].Channel)
	assert.Equal(t, "g", m.Layers[1].Channel)

	for _, tile := range m.Tiles {
		heights, ok := decodePNG(t, filepath.Join(out, tile.Heights)).(*image.Gray16)
		require.True(t, ok)
		assert.Equal(t, 3, heights.Bounds().Dx())
		// 0.7 remapped to [0, 1] is 0.85.
		assert.Equal(t, uint16(55705), heights.Gray16At(1, 1).Y)

		require.Len(t, tile.Weights, 1)
		weights, ok := decodePNG(t, filepath.Join(out, tile.Weights[0])).(*image.NRGBA)
		require.True(t, ok)
		px := weights.NRGBAAt(2, 0)
		assert.Equal(t, [4]uint8{255, 0, 0, 0}, [4]uint8{px.R, px.G, px.B, px.A})
	}

	assert.Contains(t, logs.String(), "Generation finished.")
}

func TestRun_HeightsOnlyTIFF(t *testing.T) {
	t.Parallel()

	graph := `
node "hills" {
  type = "perlin"
  property "seed" {
    type  = integer
    value = "3"
  }
}
node "cached" { type = "cache" }
node "out" { type = "output" }
edge "hills" "cached" {}
edge "cached" "out" {}
`
	a, logs := setupAppTest(t, graph, Config{Resolution: 5, CacheResolution: 9, Format: export.FormatTIFF})
	require.NoError(t, a.Run(context.Background()))

	m := readManifest(t, a.config.OutDir)
	require.Len(t, m.Tiles, 1)
	assert.Equal(t, "heights_0_0.tiff", m.Tiles[0].Heights)
	assert.Empty(t, m.Tiles[0].Weights)
	assert.FileExists(t, filepath.Join(a.config.OutDir, "heights_0_0.tiff"))
	assert.Contains(t, logs.String(), "Region caches populated.")
}

func TestRun_DiagnosticsDoNotStopGeneration(t *testing.T) {
	t.Parallel()

	graph := `
node "hills" { type = "perlinn" }
node "out" { type = "output" }
edge "hills" "out" {}
`
	a, logs := setupAppTest(t, graph, Config{Resolution: 2})
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "Graph diagnostic.")
	assert.FileExists(t, filepath.Join(a.config.OutDir, "heights_0_0.png"))
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	a, _ := setupAppTest(t, `node "broken" {`, Config{Resolution: 2})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load graph")
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	a, _ := setupAppTest(t, layeredGraph, Config{Resolution: 4})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, a.Run(ctx), context.Canceled)
}

func TestNewApp_PanicsOnIncompleteRegistry(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{GraphPaths: []string{"unused"}})
	require.NoError(t, err)
	assert.Panics(t, func() {
		NewApp(&SafeBuffer{}, cfg, hcl_adapter.NewLoader(), &generator.Module{})
	})
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      Config
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			in:   Config{GraphPaths: []string{"g.hcl"}},
			want: Config{GraphPaths: []string{"g.hcl"}, OutDir: DefaultOutDir, WorldSize: 1, TileSize: 1, Resolution: DefaultResolution, Format: export.FormatPNG},
		},
		{
			name: "tile larger than world is clipped",
			in:   Config{GraphPaths: []string{"g.hcl"}, WorldSize: 4, TileSize: 8, Resolution: 16, BlendOrder: sampler.Ascending},
			want: Config{GraphPaths: []string{"g.hcl"}, OutDir: DefaultOutDir, WorldSize: 4, TileSize: 4, Resolution: 16, BlendOrder: sampler.Ascending, Format: export.FormatPNG},
		},
		{name: "missing graph", in: Config{}, wantErr: true},
		{name: "negative world", in: Config{GraphPaths: []string{"g"}, WorldSize: -1}, wantErr: true},
		{name: "negative resolution", in: Config{GraphPaths: []string{"g"}, Resolution: -1}, wantErr: true},
		{name: "resolution too large", in: Config{GraphPaths: []string{"g"}, Resolution: MaxResolution + 1}, wantErr: true},
		{name: "cache resolution too large", in: Config{GraphPaths: []string{"g"}, CacheResolution: 1 << 32}, wantErr: true},
		{name: "negative cache resolution", in: Config{GraphPaths: []string{"g"}, CacheResolution: -1}, wantErr: true},
		{name: "negative workers", in: Config{GraphPaths: []string{"g"}, WorkerCount: -2}, wantErr: true},
		{name: "bad format", in: Config{GraphPaths: []string{"g"}, Format: "gif"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewConfig(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestConfig_Tiles(t *testing.T) {
	t.Parallel()

	cfg := &Config{WorldSize: 2.5, TileSize: 1}
	tiles := cfg.Tiles()
	require.Len(t, tiles, 9)
	assert.Equal(t, field.Rect{MinX: 2, MinZ: 0, MaxX: 2.5, MaxZ: 1}, tiles[2].Rect)
	assert.Equal(t, Tile{X: 0, Z: 1, Rect: field.Rect{MinZ: 1, MaxX: 1, MaxZ: 2}}, tiles[3])

	single := (&Config{WorldSize: 1, TileSize: 1}).Tiles()
	require.Len(t, single, 1)
	assert.Equal(t, field.Rect{MaxX: 1, MaxZ: 1}, single[0].Rect)
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	a := &App{logger: newLogger("debug", "text", &SafeBuffer{})}
	rec := httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestNewLogger_Format(t *testing.T) {
	t.Parallel()

	var buf SafeBuffer
	newLogger("warn", "json", &buf).Info("hidden")
	newLogger("warn", "json", &buf).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"app":"noisegridgo"`)

	var text SafeBuffer
	newLogger("bogus", "text", &text).Info("fallback")
	assert.Contains(t, text.String(), "msg=fallback")
}
