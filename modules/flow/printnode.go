package flow

import "github.com/vk/nodeprovider/graph"

// PrintNode writes its input to the run log.
type PrintNode struct {
	graph.Node
	_ graph.Menu `menu:"Flow/Print"`
	_ graph.Menu `menu:"Debug/Print"`

	Value map[string]string `slot:"input"`

	last string
}

// Describe implements graph.Describer.
func (PrintNode) Describe() string {
	return "Prints every key of its input map, sorted by key."
}
