package components

import (
	"toy-rental-storefront/internal/handler"
	"toy-rental-storefront/internal/handler/api"
	"toy-rental-storefront/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHealthHandler,
		api.NewAuthHandler,
		api.NewProductHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	health *api.HealthHandler,
	auth *api.AuthHandler,
	product *api.ProductHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
) handler.Handlers {
	return handler.Handlers{
		Health:   health,
		Auth:     auth,
		Product:  product,
		Cart:     cart,
		Checkout: checkout,
		Order:    order,
	}
}
