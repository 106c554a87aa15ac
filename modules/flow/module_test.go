package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/gotypes"
	"github.com/vk/nodeprovider/internal/registry"
	"github.com/vk/nodeprovider/modules/flow"
)

func TestModule_Registry(t *testing.T) {
	catalog := gotypes.New()
	catalog.Install(&flow.Module{})
	reg := registry.New(catalog, nil, registry.WithLogger(ctxlog.Discard()))

	printNode, ok := reg.MenuEntry("Debug/Print")
	require.True(t, ok)
	assert.Equal(t, "PrintNode", printNode.Name)
	assert.Equal(t, "Prints every key of its input map, sorted by key.", printNode.Doc)

	v, ok := reg.ViewFor(printNode)
	require.True(t, ok)
	assert.Equal(t, "PrintNodeView", v.Name)

	_, ok = reg.ViewFor(catalog.Definition(flow.RelayNode{}))
	assert.False(t, ok)

	assert.Len(t, reg.Nodes(), 2)
	assert.Len(t, reg.Views(), 1)
	assert.Len(t, reg.SlotTypes(), 3)
}
