// Package manifest loads type definitions declared in HCL files and exposes
// them as a universe.Universe.
//
// A manifest file holds any number of `node`, `view` and `type` blocks:
//
//	type "Color" {
//	  field "r" { type = number }
//	}
//
//	node "BaseNode" {
//	  abstract = true
//	}
//
//	node "ColorNode" {
//	  extends     = "BaseNode"
//	  menu        = ["Math/Color"]
//	  description = "Emits a constant color."
//
//	  input "color" { type = Color }
//	  output "channels" { type = list(number) }
//	}
//
//	view "BaseNodeView" {
//	  targets = "BaseNode"
//	}
//
// Nodes extend the Node root and views the View root unless `extends` says
// otherwise. Slot and field types are either the bare name of another
// manifest definition or an HCL type constraint such as `string` or
// `map(number)`. Definitions are enumerated in file path order, then in block
// order within each file.
package manifest
