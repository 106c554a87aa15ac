package math

import "github.com/vk/nodeprovider/graph"

// ColorNode passes a color through, exposing it to the editor's color picker.
type ColorNode struct {
	BaseNode
	_ graph.Menu `menu:"Math/Color"`

	Color Color `slot:"input"`
	Out   Color `slot:"output"`
}

// Describe implements graph.Describer.
func (ColorNode) Describe() string {
	return "Passes a color through unchanged. Connect it to any color slot to pick the value in the editor."
}
