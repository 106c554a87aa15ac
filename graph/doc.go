// Package graph is the annotation vocabulary node authors use to describe
// Go types to the node provider.
//
// A node kind is a struct embedding Node (directly or through another node
// struct). A view kind embeds View and names the node it edits with a
// Target field. Menu entries, abstractness and slots are declared with
// marker fields and struct tags:
//
//	type ColorNode struct {
//		BaseNode
//		_ graph.Menu `menu:"Math/Color"`
//
//		Color Color   `slot:"input"`
//		Out   []float64 `slot:"output"`
//	}
//
//	type ColorNodeView struct {
//		graph.View
//		_ graph.Target[ColorNode]
//	}
//
// Types only become visible once registered with a catalog, see
// internal/gotypes.
package graph
