// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/vk/nodeprovider/internal/artifact"
	"github.com/vk/nodeprovider/internal/universe"
)

// Registry holds the indices built from one scan of a universe.
type Registry struct {
	universe  universe.Universe
	artifacts artifact.Index
	logger    *slog.Logger
	once      sync.Once

	// viewForNode is keyed by node ID. viewKeys keeps the node handles in
	// the order their first binding was made, which is the order the
	// inheritance fallback walks them.
	viewForNode map[string]*universe.Definition
	viewKeys    []*universe.Definition

	nodeForMenuEntry map[string]*universe.Definition
	sourceForNode    map[string]artifact.Artifact
	sourceForView    map[string]artifact.Artifact
	slotTypes        []universe.TypeRef

	nodes []*universe.Definition
	views []*universe.Definition
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a registry over u. Source artifacts are resolved through ix,
// which may be nil when no artifact index is available. Nothing is scanned
// until the first query or an explicit call to Scan.
func New(u universe.Universe, ix artifact.Index, opts ...Option) *Registry {
	if ix == nil {
		ix = artifact.None{}
	}
	r := &Registry{
		universe:         u,
		artifacts:        ix,
		logger:           slog.Default(),
		viewForNode:      make(map[string]*universe.Definition),
		nodeForMenuEntry: make(map[string]*universe.Definition),
		sourceForNode:    make(map[string]artifact.Artifact),
		sourceForView:    make(map[string]artifact.Artifact),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scan populates the indices. Only the first call does any work and it is
// safe to call from several goroutines; every query calls it implicitly.
func (r *Registry) Scan() {
	r.once.Do(r.scan)
}

// MenuEntries returns the menu path to node mapping. The map is a copy.
func (r *Registry) MenuEntries() map[string]*universe.Definition {
	r.Scan()
	return maps.Clone(r.nodeForMenuEntry)
}

// MenuEntry returns the node created by the given menu path.
func (r *Registry) MenuEntry(path string) (*universe.Definition, bool) {
	r.Scan()
	d, ok := r.nodeForMenuEntry[path]
	return d, ok
}

// SourceForNode returns the source artifact of a node definition.
func (r *Registry) SourceForNode(node *universe.Definition) (artifact.Artifact, bool) {
	r.Scan()
	if node == nil {
		return artifact.Artifact{}, false
	}
	a, ok := r.sourceForNode[node.ID]
	return a, ok
}

// SourceForView returns the source artifact of a view definition.
func (r *Registry) SourceForView(view *universe.Definition) (artifact.Artifact, bool) {
	r.Scan()
	if view == nil {
		return artifact.Artifact{}, false
	}
	a, ok := r.sourceForView[view.ID]
	return a, ok
}

// SlotTypes returns the declared type of every slot field in scan order.
// A type appears once per field declaring it.
func (r *Registry) SlotTypes() []universe.TypeRef {
	r.Scan()
	return append([]universe.TypeRef(nil), r.slotTypes...)
}

// Nodes returns the registered node definitions in scan order.
func (r *Registry) Nodes() []*universe.Definition {
	r.Scan()
	return append([]*universe.Definition(nil), r.nodes...)
}

// Views returns the registered view definitions in scan order.
func (r *Registry) Views() []*universe.Definition {
	r.Scan()
	return append([]*universe.Definition(nil), r.views...)
}

// Universe returns the universe the registry scans.
func (r *Registry) Universe() universe.Universe {
	return r.universe
}
