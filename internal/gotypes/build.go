// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package gotypes

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/vk/nodeprovider/graph"
	"github.com/vk/nodeprovider/internal/universe"
)

var (
	nodeType      = reflect.TypeOf(graph.Node{})
	viewType      = reflect.TypeOf(graph.View{})
	abstractType  = reflect.TypeOf(graph.Abstract{})
	menuType      = reflect.TypeOf(graph.Menu{})
	targeterType  = reflect.TypeOf((*graph.Targeter)(nil)).Elem()
	describerType = reflect.TypeOf((*graph.Describer)(nil)).Elem()
)

// builder translates reflect types into definitions. Handles are memoized so
// that a base shared by several types is a single definition within one
// build, and so pointer embedding cycles terminate.
type builder struct {
	logger *slog.Logger
	defs   map[reflect.Type]*universe.Definition
}

func newBuilder(logger *slog.Logger) *builder {
	return &builder{
		logger: logger,
		defs:   make(map[reflect.Type]*universe.Definition),
	}
}

func (b *builder) build(t reflect.Type) *universe.Definition {
	switch t {
	case nodeType:
		return universe.NodeRoot
	case viewType:
		return universe.ViewRoot
	}
	if d, ok := b.defs[t]; ok {
		return d
	}

	d := &universe.Definition{
		ID:     qualifiedName(t),
		Name:   t.Name(),
		Origin: t.PkgPath(),
	}
	b.defs[t] = d

	if reflect.PointerTo(t).Implements(describerType) {
		d.Doc = reflect.New(t).Interface().(graph.Describer).Describe()
	}

	for i := 0; i < t.NumField(); i++ {
		b.inspectField(d, t.Field(i))
	}
	return d
}

func (b *builder) inspectField(d *universe.Definition, f reflect.StructField) {
	ft := f.Type

	switch {
	case ft == abstractType:
		d.Abstract = true
		return
	case ft == menuType:
		path := strings.TrimSpace(f.Tag.Get(graph.MenuTag))
		if path == "" {
			b.logger.Warn("Ignoring menu declaration without a path.", "type", d.ID, "field", f.Name)
			return
		}
		d.Menu = append(d.Menu, path)
		return
	case ft.Implements(targeterType):
		if ft.Kind() != reflect.Struct {
			b.logger.Warn("Ignoring view target declared through a pointer or interface.", "type", d.ID, "field", f.Name, "declared", ft.String())
			return
		}
		b.inspectTarget(d, f)
		return
	}

	slotTag, tagged := f.Tag.Lookup(graph.SlotTag)
	if f.Anonymous && !tagged {
		if base := structType(ft); base != nil {
			d.Bases = append(d.Bases, b.build(base))
			return
		}
	}
	if f.Name == "_" {
		return
	}

	field := universe.Field{Name: f.Name, Type: typeRef(ft)}
	if tagged {
		switch dir := strings.Split(slotTag, ",")[0]; dir {
		case graph.SlotInput:
			field.Slot = universe.SlotInput
		case graph.SlotOutput:
			field.Slot = universe.SlotOutput
		default:
			b.logger.Warn("Ignoring unknown slot direction.", "type", d.ID, "field", f.Name, "slot", dir)
		}
	}
	d.Fields = append(d.Fields, field)
}

func (b *builder) inspectTarget(d *universe.Definition, f reflect.StructField) {
	if d.Target != nil {
		b.logger.Warn("Ignoring additional view target declaration.", "type", d.ID, "field", f.Name)
		return
	}
	target := reflect.Zero(f.Type).Interface().(graph.Targeter).TargetType()
	st := structType(target)
	if st == nil || st.Name() == "" {
		b.logger.Warn("Ignoring view target that is not a named struct type.", "type", d.ID, "target", target.String())
		return
	}
	d.Target = b.build(st)
}

// structType unwraps pointers and returns t when it is a struct, nil otherwise.
func structType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func typeRef(t reflect.Type) universe.TypeRef {
	ref := universe.TypeRef{Dynamic: t.Kind() == reflect.Interface && t.NumMethod() == 0}
	if t.Name() != "" {
		ref.Package, ref.Name = t.PkgPath(), t.Name()
		return ref
	}
	ref.Name = typeString(t)
	return ref
}

// typeString spells an unnamed type with the full import path of every named
// type it is built from, so equally named types from different packages stay
// distinct.
func typeString(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeString(t.Elem())
	case reflect.Slice:
		return "[]" + typeString(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeString(t.Elem()))
	case reflect.Map:
		return "map[" + typeString(t.Key()) + "]" + typeString(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + typeString(t.Elem())
		case reflect.SendDir:
			return "chan<- " + typeString(t.Elem())
		}
		return "chan " + typeString(t.Elem())
	}
	return t.String()
}
