package math

import "github.com/vk/nodeprovider/graph"

// AddNode sums its inputs.
type AddNode struct {
	BinaryNode
	_ graph.Menu `menu:"Math/Add"`
	_ graph.Menu `menu:"Math/Operators/+"`

	Sum float64 `slot:"output"`
}

// Describe implements graph.Describer.
func (AddNode) Describe() string {
	return "Outputs A + B."
}

// MultiplyNode multiplies its inputs.
type MultiplyNode struct {
	BinaryNode
	_ graph.Menu `menu:"Math/Multiply"`
	_ graph.Menu `menu:"Math/Operators/*"`

	Product float64 `slot:"output"`
}

// Describe implements graph.Describer.
func (MultiplyNode) Describe() string {
	return "Outputs A * B."
}
