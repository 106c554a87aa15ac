package flow

import "github.com/vk/nodeprovider/graph"

// PrintNodeView shows the most recent lines printed by a PrintNode.
type PrintNodeView struct {
	graph.View
	_ graph.Target[PrintNode]

	lines int
}
