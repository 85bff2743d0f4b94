package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/noisegridgo/internal/export"
	"github.com/vk/noisegridgo/internal/sampler"
)

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-g", "terrain.hcl",
		"-out", "tiles",
		"-world-size", "4",
		"-tile-size", "2",
		"-resolution", "65",
		"-cache-resolution", "128",
		"-blend-order", "ascending",
		"-format", "tif",
		"-seed", "42",
		"-workers", "3",
		"-log-level", "DEBUG",
		"-log-format", "json",
		"-healthcheck-port", "8081",
		"extra.hcl",
	}
	cfg, exit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, []string{"terrain.hcl", "extra.hcl"}, cfg.GraphPaths)
	assert.Equal(t, "tiles", cfg.OutDir)
	assert.Equal(t, 4.0, cfg.WorldSize)
	assert.Equal(t, 2.0, cfg.TileSize)
	assert.Equal(t, 65, cfg.Resolution)
	assert.Equal(t, 128, cfg.CacheResolution)
	assert.Equal(t, sampler.Ascending, cfg.BlendOrder)
	assert.Equal(t, export.FormatTIFF, cfg.Format)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 8081, cfg.HealthcheckPort)
}

func TestParse_PositionalPath(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{"graphs/"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, []string{"graphs/"}, cfg.GraphPaths)
	assert.Equal(t, sampler.Descending, cfg.BlendOrder)
	assert.Equal(t, export.FormatPNG, cfg.Format)
	assert.Equal(t, cfg.WorldSize, cfg.TileSize)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"-nope"}, want: "flag provided but not defined"},
		{name: "log format", args: []string{"-log-format", "xml", "g.hcl"}, want: "invalid log-format"},
		{name: "log level", args: []string{"-log-level", "trace", "g.hcl"}, want: "invalid log-level"},
		{name: "blend order", args: []string{"-blend-order", "sideways", "g.hcl"}, want: "invalid blend-order"},
		{name: "format", args: []string{"-format", "bmp", "g.hcl"}, want: "invalid format"},
		{name: "resolution", args: []string{"-resolution", "-4", "g.hcl"}, want: "resolution must be in"},
		{name: "cache resolution", args: []string{"-cache-resolution", "4294967296", "g.hcl"}, want: "cache resolution must be in"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
