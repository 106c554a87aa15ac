// Package math provides arithmetic and color node kinds.
package math

import "github.com/vk/nodeprovider/internal/gotypes"

// Module implements the gotypes.Module interface for this package.
type Module struct{}

// Register adds the package's definitions to the catalog.
func (m *Module) Register(c *gotypes.Catalog) {
	c.Register(
		Color{},
		BaseNode{},
		BinaryNode{},
		ColorNode{},
		AddNode{},
		MultiplyNode{},
		BaseNodeView{},
	)
}
