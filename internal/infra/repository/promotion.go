package repository

import (
	"context"

	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/infra"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/pgconv"
	"toy-rental-storefront/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

const lookupActivePromotion = `
SELECT code, rate
FROM promotions
WHERE code = $1
  AND active
  AND (valid_from IS NULL OR valid_from <= $2)
  AND (valid_to IS NULL OR valid_to > $2)
`

// PromotionRepository is the Postgres-backed promotion catalog.
type PromotionRepository struct {
	db    shared.DBTX
	clock clock.Clock
}

func NewPromotionRepository(db shared.DBTX, clock clock.Clock) *PromotionRepository {
	return &PromotionRepository{
		db:    db,
		clock: clock,
	}
}

var _ promotion.Catalog = (*PromotionRepository)(nil)

// Lookup expects an already normalised code.
func (r *PromotionRepository) Lookup(ctx context.Context, code string) (promotion.Promotion, bool, error) {
	var (
		stored string
		rate   pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, lookupActivePromotion, code, pgconv.TimeToPgtype(r.clock.Now())).Scan(&stored, &rate)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return promotion.Promotion{}, false, nil
		}
		return promotion.Promotion{}, false, infra.WrapRepoErr("failed to look up promotion", err)
	}

	value, err := pgconv.DecimalFromNumeric(rate)
	if err != nil {
		return promotion.Promotion{}, false, infra.WrapRepoErr("failed to convert promotion rate", err)
	}
	p, err := promotion.NewPromotion(stored, value)
	if err != nil {
		return promotion.Promotion{}, false, infra.WrapRepoErr("stored promotion is invalid", err)
	}
	return p, true, nil
}
