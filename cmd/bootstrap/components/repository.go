package components

import (
	"toy-rental-storefront/internal/infra/backend"
	"toy-rental-storefront/internal/infra/cache"
	"toy-rental-storefront/internal/pkg/config"
	"toy-rental-storefront/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// RepositoryModule wires the stores the use cases read and write through:
// the REST backend for catalog, carts, orders and auth, and Redis for
// sessions, applied promotions and the cached cart.
var RepositoryModule = fx.Module("repository",
	backendModule,
	cacheModule,
)

var backendModule = fx.Module("repository/backend",
	fx.Provide(
		NewBackendClient,
		fx.Annotate(
			backend.NewCatalogService,
			fx.As(new(usecase.CatalogService)),
		),
		fx.Annotate(
			backend.NewCartService,
			fx.As(new(usecase.CartService)),
		),
		fx.Annotate(
			backend.NewOrderService,
			fx.As(new(usecase.OrderService)),
		),
		fx.Annotate(
			backend.NewAuthService,
			fx.As(new(usecase.AuthService)),
		),
	),
)

var cacheModule = fx.Module("repository/cache",
	fx.Provide(
		fx.Annotate(
			NewSessionStore,
			fx.As(new(usecase.SessionStore)),
		),
		fx.Annotate(
			NewCheckoutPromotionStore,
			fx.As(new(usecase.CheckoutPromotionStore)),
		),
		fx.Annotate(
			NewCartCache,
			fx.As(new(usecase.CartCache)),
		),
	),
)

func NewBackendClient(cfg config.Config) *backend.Client {
	return backend.NewClient(cfg.Backend)
}

func NewSessionStore(client *redis.Client, cfg config.Config) *cache.SessionStore {
	return cache.NewSessionStore(client, cfg.Redis.Prefix)
}

func NewCheckoutPromotionStore(client *redis.Client, cfg config.Config) *cache.CheckoutPromotionStore {
	return cache.NewCheckoutPromotionStore(client, cfg.Redis.Prefix, cfg.Storefront.CheckoutSessionTTL)
}

func NewCartCache(client *redis.Client, cfg config.Config) *cache.CartCache {
	return cache.NewCartCache(client, cfg.Redis.Prefix, cfg.Storefront.CartCacheTTL)
}
