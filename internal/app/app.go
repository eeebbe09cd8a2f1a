// Package app wires the catalog, registry, and coordinator into a runnable
// application and owns its lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/uimetricsgo/internal/catalog"
	"github.com/vk/uimetricsgo/internal/ctxlog"
	"github.com/vk/uimetricsgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader *registry.Loader
	handle *registry.Handle
}

// NewApp is the constructor for the main application. It builds an isolated
// logger, registers the metric modules (the built-ins unless the caller
// supplies its own), scans the catalog once, and holds the first registry
// snapshot. A catalog root that cannot be scanned at all is a fatal startup
// error and panics; individual bad entries are only warnings.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	table := registry.NewTable()
	if len(modules) == 0 {
		modules = coreMetrics
	}
	for _, mod := range modules {
		mod.Register(table)
	}
	logger.Debug("All metric modules registered.", "count", len(modules))

	loader := registry.NewLoader(table)

	descriptors, err := catalog.Scan(ctx, cfg.MetricsPath)
	if err != nil {
		// A failure to read the catalog root is a fatal startup error.
		panic(fmt.Errorf("failed to scan metrics catalog: %w", err))
	}

	reg := registry.Build(ctx, descriptors, loader)
	logger.Debug("Initial registry snapshot built.", "metrics", reg.Len())

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		handle: registry.NewHandle(reg),
	}
}

// Handle returns the registry handle. This is primarily for testing.
func (a *App) Handle() *registry.Handle {
	return a.handle
}

// rebuild rescans the catalog and builds a fresh snapshot. Loads stay
// memoized across rebuilds; only the descriptor side changes.
func (a *App) rebuild(ctx context.Context) (*registry.Registry, error) {
	descriptors, err := catalog.Scan(ctx, a.config.MetricsPath)
	if err != nil {
		return nil, err
	}
	return registry.Build(ctx, descriptors, a.loader), nil
}
