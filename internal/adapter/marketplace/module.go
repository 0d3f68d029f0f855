package marketplace

import "go.uber.org/fx"

// Module exposes the marketplace client to the fx graph.
var Module = fx.Provide(New)
