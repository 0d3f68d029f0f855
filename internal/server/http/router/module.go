package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/marketpanel/internal/app"
	"github.com/polkiloo/marketpanel/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.PanelFacade) handlers.PanelFacade { return f }),
	fx.Provide(Setup),
)
