// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package artifact

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/fsutil"
	"golang.org/x/text/cases"
)

// Index finds artifacts by name.
type Index interface {
	// Find returns every artifact whose indexed name contains substr.
	Find(substr string) ([]Artifact, error)
}

// None is an index that never finds anything.
type None struct{}

// Find implements Index.
func (None) Find(string) ([]Artifact, error) {
	return nil, nil
}

// List is a fixed index over the given artifacts.
type List []Artifact

// Find implements Index with a case-insensitive substring match, keeping the
// list order.
func (l List) Find(substr string) ([]Artifact, error) {
	needle := fold(substr)
	var out []Artifact
	for _, a := range l {
		if strings.Contains(fold(a.Name), needle) {
			out = append(out, a)
		}
	}
	return out, nil
}

// FSIndex indexes source files under a root directory. The tree is walked
// once, when the index is built.
type FSIndex struct {
	root      string
	artifacts List
}

// NewFSIndex walks root and indexes every file with one of the given
// extensions, in lexical path order.
func NewFSIndex(ctx context.Context, root string, extensions ...string) (*FSIndex, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Indexing source artifacts...", "root", root, "extensions", extensions)

	paths, err := fsutil.FindFilesByExtension(root, extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to index source artifacts in %s: %w", root, err)
	}

	ix := &FSIndex{root: root, artifacts: make(List, 0, len(paths))}
	for _, p := range paths {
		ix.artifacts = append(ix.artifacts, New(p))
	}

	logger.Debug("Source artifacts indexed.", "root", root, "count", len(ix.artifacts))
	return ix, nil
}

// Find implements Index.
func (ix *FSIndex) Find(substr string) ([]Artifact, error) {
	return ix.artifacts.Find(substr)
}

// Len returns the number of indexed artifacts.
func (ix *FSIndex) Len() int {
	return len(ix.artifacts)
}

// Root returns the indexed directory.
func (ix *FSIndex) Root() string {
	return ix.root
}

// fold applies Unicode case folding. Casers are not shared between
// goroutines, so a fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
