// Package integrity guards content deletion: items used by games are kept,
// everything else is removed only after its edges and tags are gone.
package integrity

import "go.uber.org/fx"

// Module provides integrity domain dependencies.
var Module = fx.Module("integrity",
	fx.Provide(NewGuard),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
