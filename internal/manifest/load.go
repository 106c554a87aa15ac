// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/fsutil"
	"github.com/vk/nodeprovider/internal/universe"
	"golang.org/x/sync/errgroup"
)

// Namespace qualifies the IDs of manifest definitions and the type
// references that point at them.
const Namespace = "manifest"

// Set is a loaded collection of manifest definitions.
type Set struct {
	files []string
	defs  []*universe.Definition
}

// Definitions implements universe.Universe.
func (s *Set) Definitions() []*universe.Definition {
	return s.defs
}

// Files returns the manifest files the set was loaded from, in load order.
func (s *Set) Files() []string {
	return append([]string(nil), s.files...)
}

// File is an in-memory manifest source.
type File struct {
	Name string
	Src  []byte
}

// Load reads manifests from the given paths. A directory contributes every
// .hcl file beneath it; a file is loaded whatever its extension.
func Load(ctx context.Context, paths ...string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifests...", "paths", paths)

	var names []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest path %s: %w", p, err)
		}
		if !info.IsDir() {
			names = append(names, p)
			continue
		}
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk manifest directory %s: %w", p, err)
		}
		if len(found) == 0 {
			logger.Warn("No .hcl manifest files found in path", "path", p)
		}
		names = append(names, found...)
	}

	files := make([]File, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("failed to read manifest %s: %w", name, err)
			}
			files[i] = File{Name: name, Src: src}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Decode(ctx, files...)
}

// Decode parses and resolves in-memory manifests. Files are parsed
// concurrently but resolved in the order given.
func Decode(ctx context.Context, files ...File) (*Set, error) {
	logger := ctxlog.FromContext(ctx)

	parsed := make([]*hcl.File, len(files))
	parseDiags := make([]hcl.Diagnostics, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			parsed[i], parseDiags[i] = hclsyntax.ParseConfig(f.Src, f.Name, hcl.InitialPos)
			return nil
		})
	}
	_ = g.Wait()

	var diags hcl.Diagnostics
	for _, d := range parseDiags {
		diags = append(diags, d...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifests: %w", diags)
	}

	l := newLoader()
	for i, f := range parsed {
		diags = append(diags, l.collect(f, files[i].Name)...)
	}
	if !diags.HasErrors() {
		diags = append(diags, l.resolve()...)
	}

	for _, d := range diags {
		if d.Severity == hcl.DiagWarning {
			logger.Warn(d.Summary, "detail", d.Detail, "range", subject(d))
		}
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load manifests: %w", errors.Join(diags.Errs()...))
	}

	set := &Set{defs: make([]*universe.Definition, 0, len(l.order))}
	for _, f := range files {
		set.files = append(set.files, f.Name)
	}
	for _, e := range l.order {
		set.defs = append(set.defs, e.def)
	}

	logger.Info("Manifests loaded.", "files", len(files), "definitions", len(set.defs))
	return set, nil
}

func subject(d *hcl.Diagnostic) string {
	if d.Subject == nil {
		return ""
	}
	return d.Subject.String()
}
