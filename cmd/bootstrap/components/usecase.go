package components

import (
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/config"
	"toy-rental-storefront/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseStorefrontModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSelectionBuilder,
	usecase.NewCartState,
)

var usecaseStorefrontModule = fx.Module("usecase/storefront",
	fx.Provide(
		usecase.NewAuthUseCase,
		usecase.NewProductUseCase,
		usecase.NewCartUseCase,
		NewPromotionUseCase,
		usecase.NewCheckoutUseCase,
		usecase.NewOrderUseCase,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewSelectionBuilder(clk clock.Clock, cfg config.Config) *rental.SelectionBuilder {
	return rental.NewSelectionBuilder(clk, cfg.Storefront.Location())
}

func NewPromotionUseCase(
	engine *promotion.Engine,
	promos usecase.CheckoutPromotionStore,
	state *usecase.CartState,
	cfg config.Config,
) usecase.PromotionUseCase {
	return usecase.NewPromotionUseCase(engine, promos, state, cfg.Storefront.PromoMessageTTL)
}
