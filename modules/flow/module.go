// Package flow provides node kinds that route and inspect values.
package flow

import "github.com/vk/nodeprovider/internal/gotypes"

// Module implements the gotypes.Module interface for this package.
type Module struct{}

// Register adds the package's definitions to the catalog.
func (m *Module) Register(c *gotypes.Catalog) {
	c.Register(
		PrintNode{},
		RelayNode{},
		PrintNodeView{},
	)
}
