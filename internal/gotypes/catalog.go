// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package gotypes

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/vk/nodeprovider/internal/universe"
)

// Module is implemented by packages that contribute types to a catalog.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds registered Go types in registration order.
type Catalog struct {
	mu     sync.Mutex
	order  []reflect.Type
	seen   map[reflect.Type]struct{}
	logger *slog.Logger
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		seen:   make(map[reflect.Type]struct{}),
		logger: slog.Default(),
	}
}

var ambient = New()

// Ambient returns the process-wide catalog.
func Ambient() *Catalog {
	return ambient
}

// Register adds types to the process-wide catalog.
func Register(values ...any) {
	ambient.Register(values...)
}

// SetLogger replaces the logger used for registration and build diagnostics.
func (c *Catalog) SetLogger(logger *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

// Register adds the types of the given values. A value may be a struct, a
// pointer to a struct or a reflect.Type naming one. Registering a type twice
// is a no-op; anything that is not a struct type panics.
func (c *Catalog) Register(values ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range values {
		t := typeOf(v)
		if t == nil || t.Kind() != reflect.Struct {
			panic(fmt.Sprintf("gotypes: cannot register %T: not a struct type", v))
		}
		if t.Name() == "" {
			panic(fmt.Sprintf("gotypes: cannot register anonymous struct type %s", t))
		}
		if _, exists := c.seen[t]; exists {
			continue
		}
		c.logger.Debug("Registering Go type.", "type", qualifiedName(t))
		c.seen[t] = struct{}{}
		c.order = append(c.order, t)
	}
}

// Install registers every module into the catalog.
func (c *Catalog) Install(modules ...Module) {
	for _, m := range modules {
		m.Register(c)
	}
}

// Len returns the number of registered types.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Definitions implements universe.Universe. Handles are rebuilt on each call
// and enumerated in registration order.
func (c *Catalog) Definitions() []*universe.Definition {
	c.mu.Lock()
	order := append([]reflect.Type(nil), c.order...)
	logger := c.logger
	c.mu.Unlock()

	b := newBuilder(logger)
	out := make([]*universe.Definition, 0, len(order))
	for _, t := range order {
		out = append(out, b.build(t))
	}
	return out
}

// Definition returns a handle for the type of v whether or not it has been
// registered. It returns nil when v does not name a struct type.
func (c *Catalog) Definition(v any) *universe.Definition {
	t := typeOf(v)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	c.mu.Lock()
	logger := c.logger
	c.mu.Unlock()
	return newBuilder(logger).build(t)
}

func typeOf(v any) reflect.Type {
	var t reflect.Type
	switch tv := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		t = tv
	default:
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
