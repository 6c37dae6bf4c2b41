// Package relations stores the typed relationship graph between content
// items and enforces the relationship-type compatibility matrix.
package relations

import (
	"go.uber.org/fx"
)

// Module provides relations domain dependencies.
var Module = fx.Module("relations",
	fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(EdgeStore))),
	),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
