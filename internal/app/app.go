package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/noisegridgo/internal/ctxlog"
	"github.com/vk/noisegridgo/internal/document"
	"github.com/vk/noisegridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	registry   *registry.Registry
	loader     document.Loader
	config     *Config
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// With no modules given the core node types are registered.
func NewApp(outW io.Writer, cfg *Config, loader document.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules()
	}
	reg.RegisterAll(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "types", len(reg.Types()))

	// A missing node kind is a mismatch between code and registry, so we panic.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctx,
		registry: reg,
		loader:   loader,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
