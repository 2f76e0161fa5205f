package components

import (
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/infra/repository"
	"toy-rental-storefront/internal/infra/uow"
	"toy-rental-storefront/internal/pkg/clock"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Promotions: database codes first, built-in codes as fallback
		NewPromotionRepository,
		NewPromotionEngine,
	),
)

func NewPromotionRepository(pool *pgxpool.Pool, clk clock.Clock) *repository.PromotionRepository {
	return repository.NewPromotionRepository(pool, clk)
}

func NewPromotionEngine(repo *repository.PromotionRepository) *promotion.Engine {
	return promotion.NewEngine(promotion.Chain{repo, promotion.DefaultCatalog()})
}
