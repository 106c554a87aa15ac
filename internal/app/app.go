package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/nodeprovider/internal/artifact"
	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/gotypes"
	"github.com/vk/nodeprovider/internal/manifest"
	"github.com/vk/nodeprovider/internal/registry"
	"github.com/vk/nodeprovider/internal/universe"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	ctx    context.Context
	config *Config

	catalog    *gotypes.Catalog
	manifests  *manifest.Set
	universe   universe.Universe
	artifacts  artifact.Index
	registry   *registry.Registry
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Without modules the
// app scans the process-wide catalog with the core modules installed and
// initializes the shared registry; with modules it builds an isolated
// catalog and registry, which is what tests use.
func NewApp(outW io.Writer, cfg *Config, modules ...gotypes.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		ctx:    ctx,
		config: cfg,
	}

	shared := len(modules) == 0
	if shared {
		a.catalog = ambientCatalog()
	} else {
		a.catalog = gotypes.New()
		a.catalog.Install(modules...)
	}
	a.catalog.SetLogger(logger)
	logger.Debug("Go modules registered.", "types", a.catalog.Len())

	a.universe = a.catalog
	if cfg.ManifestsPath != "" {
		set, err := manifest.Load(ctx, cfg.ManifestsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifests: %w", err)
		}
		a.manifests = set
		a.universe = universe.Join(a.catalog, set)
	}

	a.artifacts = artifact.None{}
	if cfg.SourcesPath != "" {
		ix, err := artifact.NewFSIndex(ctx, cfg.SourcesPath, cfg.SourceExtensions...)
		if err != nil {
			return nil, err
		}
		a.artifacts = ix
	}

	if shared {
		a.registry = registry.Init(a.universe, a.artifacts, registry.WithLogger(logger))
	} else {
		a.registry = registry.New(a.universe, a.artifacts, registry.WithLogger(logger))
	}
	a.registry.Scan()

	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// lookup resolves a user supplied name to a definition.
func (a *App) lookup(name string) (*universe.Definition, error) {
	if d, ok := universe.Find(a.universe, name); ok {
		return d, nil
	}
	if d, ok := universe.Find(universe.List{universe.NodeRoot, universe.ViewRoot}, name); ok {
		return d, nil
	}
	err := &NotFoundError{Name: name, Suggestions: universe.Suggest(a.universe, name)}
	a.logger.Debug("Definition lookup failed.", "name", name, "suggestions", err.Suggestions)
	return nil, err
}

// NotFoundError reports a name that matches no definition.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("no definition named %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestions[0])
	}
	return msg
}
