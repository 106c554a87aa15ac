package graph

import "reflect"

// Node is the base role of every node kind.
type Node struct{}

// View is the base role of every editor view kind.
type View struct{}

// Abstract marks the embedding type as abstract. Abstract types are scanned
// for slots but never registered as nodes or views.
type Abstract struct{}

// Menu declares one creation-menu entry. The path is read from the field's
// `menu` tag; a struct may carry any number of Menu fields.
type Menu struct{}

// Target declares that the embedding view edits node kind T.
type Target[T any] struct{}

// TargetType returns the node type named by the declaration.
func (Target[T]) TargetType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Targeter is implemented by Target declarations.
type Targeter interface {
	TargetType() reflect.Type
}

// Describer lets a definition provide a human readable description.
type Describer interface {
	Describe() string
}

// Tag keys and values understood by the catalog.
const (
	MenuTag = "menu"
	SlotTag = "slot"

	SlotInput  = "input"
	SlotOutput = "output"
)
