// Package content is the entity catalog: the content variants, their
// storage accessors and their per-variant search and display rules.
package content

import (
	"github.com/uptrace/bun"
	"go.uber.org/fx"
)

// Module provides the catalog and its HTTP routes.
var Module = fx.Module("content",
	fx.Provide(provideCatalog),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)

func provideCatalog(db bun.IDB) *Catalog {
	return NewBunCatalog(db)
}
