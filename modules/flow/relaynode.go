package flow

import "github.com/vk/nodeprovider/graph"

// RelayNode forwards its input unchanged.
type RelayNode struct {
	graph.Node
	_ graph.Menu `menu:"Flow/Relay"`

	In  any `slot:"input"`
	Out any `slot:"output"`
}
