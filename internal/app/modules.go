package app

import (
	"sync"

	"github.com/vk/nodeprovider/internal/gotypes"
	"github.com/vk/nodeprovider/modules/flow"
	mathnodes "github.com/vk/nodeprovider/modules/math"
)

// coreModules is the definitive list of all node packs that are compiled
// into the nodeprovider binary.
var coreModules = []gotypes.Module{
	&mathnodes.Module{},
	&flow.Module{},
}

var installCore sync.Once

// ambientCatalog returns the process-wide catalog with the core modules
// installed.
func ambientCatalog() *gotypes.Catalog {
	installCore.Do(func() {
		gotypes.Ambient().Install(coreModules...)
	})
	return gotypes.Ambient()
}
