// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package universe

import "fmt"

// SlotDirection tells whether a field is an input slot, an output slot or
// neither.
type SlotDirection int

const (
	SlotNone SlotDirection = iota
	SlotInput
	SlotOutput
)

// String returns the tag spelling of the direction.
func (s SlotDirection) String() string {
	switch s {
	case SlotInput:
		return "input"
	case SlotOutput:
		return "output"
	default:
		return "none"
	}
}

// TypeRef names a data type, such as the declared type of a field.
type TypeRef struct {
	// Package is the import path, manifest namespace or type system the name
	// belongs to. Empty for Go builtin and unnamed types.
	Package string
	Name    string
	// Dynamic is set when the type accepts any value, such as Go's empty
	// interface or the HCL "any" constraint.
	Dynamic bool
}

// String returns the qualified spelling of the reference.
func (t TypeRef) String() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Field is an instance field declared directly on a definition.
type Field struct {
	Name string
	Type TypeRef
	Slot SlotDirection
}

// IsSlot reports whether the field is tagged as an input or output slot.
func (f Field) IsSlot() bool {
	return f.Slot == SlotInput || f.Slot == SlotOutput
}

// Definition is a handle for a type known to a universe.
type Definition struct {
	// ID is the fully qualified identity. All registry indices key on it.
	ID string
	// Name is the simple name. It is what source artifacts are matched on.
	Name     string
	Abstract bool
	// Bases lists the direct ancestors.
	Bases []*Definition
	// Menu holds the menu-entry declarations in declaration order.
	Menu []string
	// Target is the node kind a view declares it edits, nil when absent.
	Target *Definition
	Fields []Field
	Doc    string
	// Origin is where the definition was declared: a Go package path or a
	// manifest file.
	Origin string
}

// IsSubclassOf reports whether base is a strict ancestor of d. Ancestry is
// compared by ID so handles rebuilt by different lookups still match.
func (d *Definition) IsSubclassOf(base *Definition) bool {
	if d == nil || base == nil {
		return false
	}
	seen := make(map[string]struct{})
	stack := append([]*Definition(nil), d.Bases...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		if cur.ID == base.ID {
			return true
		}
		if _, ok := seen[cur.ID]; ok {
			continue
		}
		seen[cur.ID] = struct{}{}
		stack = append(stack, cur.Bases...)
	}
	return false
}

// Ancestors returns every strict ancestor of d, nearest first.
func (d *Definition) Ancestors() []*Definition {
	if d == nil {
		return nil
	}
	var out []*Definition
	seen := make(map[string]struct{})
	queue := append([]*Definition(nil), d.Bases...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == nil {
			continue
		}
		if _, ok := seen[cur.ID]; ok {
			continue
		}
		seen[cur.ID] = struct{}{}
		out = append(out, cur)
		queue = append(queue, cur.Bases...)
	}
	return out
}

// IsNode reports whether d is a concrete node kind.
func (d *Definition) IsNode() bool {
	return d != nil && !d.Abstract && d.IsSubclassOf(NodeRoot)
}

// IsView reports whether d is a concrete view kind.
func (d *Definition) IsView() bool {
	return d != nil && !d.Abstract && d.IsSubclassOf(ViewRoot)
}

// SlotFields returns the fields tagged as input or output slots, in
// declaration order.
func (d *Definition) SlotFields() []Field {
	var out []Field
	for _, f := range d.Fields {
		if f.IsSlot() {
			out = append(out, f)
		}
	}
	return out
}

// String implements fmt.Stringer.
func (d *Definition) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.ID
}

// GoString keeps %#v output short in test failures.
func (d *Definition) GoString() string {
	return fmt.Sprintf("universe.Definition(%s)", d)
}

// The base roles shared by every universe.
var (
	NodeRoot = &Definition{ID: "graph.Node", Name: "Node", Abstract: true, Origin: "graph"}
	ViewRoot = &Definition{ID: "graph.View", Name: "View", Abstract: true, Origin: "graph"}
)
