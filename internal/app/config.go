package app

import (
	"errors"
	"fmt"

	"github.com/vk/noisegridgo/internal/export"
	"github.com/vk/noisegridgo/internal/field"
	"github.com/vk/noisegridgo/internal/sampler"
)

// Default values applied by NewConfig to zero fields.
const (
	DefaultOutDir     = "out"
	DefaultWorldSize  = 1.0
	DefaultResolution = 257
	// MaxResolution bounds the samples along a tile edge.
	MaxResolution = 16385
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPaths []string // .hcl or .json files, or directories holding them
	OutDir     string

	// WorldSize is the edge of the square world [0, WorldSize]^2 in world units.
	WorldSize float64
	// TileSize is the edge of one exported tile. Zero means one tile.
	TileSize float64
	// Resolution is the number of samples along each tile edge.
	Resolution int
	// CacheResolution overrides every region cache grid size. Zero keeps
	// the resolution declared on each cache node.
	CacheResolution int
	BlendOrder      sampler.Order
	Format          export.Format
	Seed            int64

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("GraphPaths is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.WorldSize == 0 {
		cfg.WorldSize = DefaultWorldSize
	}
	if cfg.WorldSize < 0 {
		return nil, fmt.Errorf("world size must be positive, got %g", cfg.WorldSize)
	}
	if cfg.TileSize == 0 || cfg.TileSize > cfg.WorldSize {
		cfg.TileSize = cfg.WorldSize
	}
	if cfg.TileSize < 0 {
		return nil, fmt.Errorf("tile size must be positive, got %g", cfg.TileSize)
	}
	if cfg.Resolution == 0 {
		cfg.Resolution = DefaultResolution
	}
	if cfg.Resolution < 0 || cfg.Resolution > MaxResolution {
		return nil, fmt.Errorf("resolution must be in [1, %d], got %d", MaxResolution, cfg.Resolution)
	}
	if cfg.CacheResolution < 0 || cfg.CacheResolution > field.MaxCacheResolution {
		return nil, fmt.Errorf("cache resolution must be in [0, %d], got %d", field.MaxCacheResolution, cfg.CacheResolution)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.Format == "" {
		cfg.Format = export.FormatPNG
	}
	if _, err := export.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// World is the square sampled by a run.
func (c *Config) World() field.Rect {
	return field.Rect{MaxX: c.WorldSize, MaxZ: c.WorldSize}
}
