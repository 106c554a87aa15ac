package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/nodeprovider/internal/artifact"
	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/universe"
)

func TestInit_FirstCallWins(t *testing.T) {
	node := def("Shared", universe.NodeRoot)
	node.Menu = []string{"Shared/Node"}

	first := Init(universe.List{node}, artifact.None{}, WithLogger(ctxlog.Discard()))
	second := Init(universe.List{}, nil)

	assert.Same(t, first, second)
	assert.Same(t, first, Shared())

	got, ok := Shared().MenuEntry("Shared/Node")
	assert.True(t, ok)
	assert.Same(t, node, got)
}
