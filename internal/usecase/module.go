package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
)

// Module provides the panel use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		func(c *marketplace.Client) AuthGateway { return c.Auth },
		func(c *marketplace.Client) DeliveryGateway { return c.Deliveries },
		NewViews,
		NewAuthUseCase,
		NewDeliveryUseCase,
		NewDirectoryUseCase,
		NewCatalogUseCase,
		NewOrderUseCase,
		NewSummaryUseCase,
	),
)
