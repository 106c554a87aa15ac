package gotypes

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeprovider/graph"
	"github.com/vk/nodeprovider/internal/universe"
)

type color struct {
	R, G, B float64
}

type baseNode struct {
	graph.Node
	graph.Abstract
}

type colorNode struct {
	baseNode
	_ graph.Menu `menu:"Math/Color"`
	_ graph.Menu `menu:"Legacy/Colour"`
	_ graph.Menu `menu:""`

	Color  color     `slot:"input"`
	Out    []float64 `slot:"output,multi"`
	cache  string
	broken int `slot:"sideways"`
}

func (colorNode) Describe() string { return "Emits a color." }

type baseNodeView struct {
	graph.View
	_ graph.Target[baseNode]
	_ graph.Target[colorNode]
}

type badView struct {
	graph.View
	_ graph.Target[int]
}

type pointerTargetView struct {
	graph.View
	_ *graph.Target[colorNode]
}

type interfaceTargetView struct {
	graph.View
	T graph.Targeter
}

type embeddedSlotNode struct {
	graph.Node
	color `slot:"input"`
	X     float64 `slot:"input"`
}

type compositeNode struct {
	graph.Node
	Colors  []color           `slot:"input"`
	ByName  map[string]*color `slot:"input"`
	Pair    [2]color          `slot:"output"`
	Anytime any               `slot:"input"`
}

type loopA struct{ *loopB }
type loopB struct{ *loopA }

type testModule struct{}

func (testModule) Register(c *Catalog) {
	c.Register(baseNode{}, &colorNode{}, reflect.TypeOf(baseNodeView{}))
}

func TestCatalog_DefinitionsFollowRegistrationOrder(t *testing.T) {
	c := New()
	c.Install(testModule{})
	c.Register(colorNode{}) // duplicate, ignored

	defs := c.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "baseNode", defs[0].Name)
	assert.Equal(t, "colorNode", defs[1].Name)
	assert.Equal(t, "baseNodeView", defs[2].Name)
	assert.Equal(t, "github.com/vk/nodeprovider/internal/gotypes.colorNode", defs[1].ID)
	assert.Equal(t, "github.com/vk/nodeprovider/internal/gotypes", defs[1].Origin)
}

func TestCatalog_Classification(t *testing.T) {
	c := New()
	c.Install(testModule{})
	defs := c.Definitions()
	base, node, view := defs[0], defs[1], defs[2]

	assert.True(t, base.Abstract)
	assert.False(t, base.IsNode())
	assert.True(t, base.IsSubclassOf(universe.NodeRoot))

	assert.False(t, node.Abstract)
	assert.True(t, node.IsNode())
	assert.True(t, node.IsSubclassOf(base))
	assert.Same(t, base, node.Bases[0], "bases are shared within one build")

	assert.True(t, view.IsView())
	require.NotNil(t, view.Target)
	assert.Equal(t, base.ID, view.Target.ID, "only the first target declaration counts")
}

func TestCatalog_Annotations(t *testing.T) {
	node := New().Definition(colorNode{})
	require.NotNil(t, node)

	assert.Equal(t, []string{"Math/Color", "Legacy/Colour"}, node.Menu)
	assert.Equal(t, "Emits a color.", node.Doc)

	require.Len(t, node.Fields, 4)
	assert.Equal(t, universe.Field{
		Name: "Color",
		Type: universe.TypeRef{Package: "github.com/vk/nodeprovider/internal/gotypes", Name: "color"},
		Slot: universe.SlotInput,
	}, node.Fields[0])
	assert.Equal(t, universe.Field{Name: "Out", Type: universe.TypeRef{Name: "[]float64"}, Slot: universe.SlotOutput}, node.Fields[1])
	assert.Equal(t, universe.SlotNone, node.Fields[2].Slot, "untagged non-public fields are recorded without a slot")
	assert.Equal(t, universe.SlotNone, node.Fields[3].Slot, "unknown slot directions are ignored")

	slots := node.SlotFields()
	require.Len(t, slots, 2)
}

func TestCatalog_MalformedTarget(t *testing.T) {
	view := New().Definition(badView{})
	require.NotNil(t, view)
	assert.Nil(t, view.Target)
	assert.True(t, view.IsView())
}

func TestCatalog_TargetDeclaredThroughPointerOrInterface(t *testing.T) {
	testCases := []struct {
		name string
		view any
	}{
		{"pointer", pointerTargetView{}},
		{"interface", interfaceTargetView{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			c.Register(colorNode{}, tc.view)

			var defs []*universe.Definition
			require.NotPanics(t, func() { defs = c.Definitions() })
			require.Len(t, defs, 2)
			assert.True(t, defs[1].IsView())
			assert.Nil(t, defs[1].Target)
		})
	}
}

func TestCatalog_EmbeddedSlotField(t *testing.T) {
	node := New().Definition(embeddedSlotNode{})
	require.NotNil(t, node)

	assert.Equal(t, []*universe.Definition{universe.NodeRoot}, node.Bases, "a slot-tagged embedded struct is not a base")
	assert.Equal(t, []universe.Field{
		{Name: "color", Type: universe.TypeRef{Package: "github.com/vk/nodeprovider/internal/gotypes", Name: "color"}, Slot: universe.SlotInput},
		{Name: "X", Type: universe.TypeRef{Name: "float64"}, Slot: universe.SlotInput},
	}, node.SlotFields())
}

func TestCatalog_CompositeTypesKeepImportPaths(t *testing.T) {
	node := New().Definition(compositeNode{})
	require.NotNil(t, node)

	const pkg = "github.com/vk/nodeprovider/internal/gotypes"
	var got []universe.TypeRef
	for _, f := range node.SlotFields() {
		got = append(got, f.Type)
	}
	assert.Equal(t, []universe.TypeRef{
		{Name: "[]" + pkg + ".color"},
		{Name: "map[string]*" + pkg + ".color"},
		{Name: "[2]" + pkg + ".color"},
		{Name: "interface {}", Dynamic: true},
	}, got)
}

func TestCatalog_PointerEmbeddingCycle(t *testing.T) {
	a := New().Definition(loopA{})
	require.NotNil(t, a)
	assert.True(t, a.IsSubclassOf(&universe.Definition{ID: "github.com/vk/nodeprovider/internal/gotypes.loopB"}))
	assert.False(t, a.IsNode())
}

func TestCatalog_DefinitionOfUnregisteredType(t *testing.T) {
	c := New()
	assert.Nil(t, c.Definition(42))
	assert.Nil(t, c.Definition(nil))

	d := c.Definition(&colorNode{})
	require.NotNil(t, d)
	assert.Equal(t, 0, c.Len(), "looking up a handle does not register the type")
}

func TestCatalog_RegisterRejectsNonStructs(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Register(42) })
	assert.Panics(t, func() { c.Register(struct{ A int }{}) })
	assert.Panics(t, func() { c.Register(nil) })
}

func TestAmbient(t *testing.T) {
	assert.Same(t, Ambient(), Ambient())
}
