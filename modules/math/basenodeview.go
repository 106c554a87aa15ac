package math

import "github.com/vk/nodeprovider/graph"

// BaseNodeView renders every node of this package that has no view of its
// own.
type BaseNodeView struct {
	graph.View
	_ graph.Target[BaseNode]

	collapsed bool
}
