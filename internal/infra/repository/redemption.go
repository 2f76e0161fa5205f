package repository

import (
	"context"

	"toy-rental-storefront/internal/infra"
	"toy-rental-storefront/internal/pkg/pgconv"
	"toy-rental-storefront/internal/usecase/shared"
)

const insertRedemption = `
INSERT INTO promotion_redemptions (order_id, user_id, code, rate, subtotal, discount_amount, redeemed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (order_id) DO NOTHING
`

type RedemptionRepository struct{}

func NewRedemptionRepository() *RedemptionRepository {
	return &RedemptionRepository{}
}

var _ shared.RedemptionRepository = (*RedemptionRepository)(nil)

// Record is idempotent per order id.
func (r *RedemptionRepository) Record(ctx context.Context, tx shared.DBTX, red shared.Redemption) error {
	_, err := tx.Exec(ctx, insertRedemption,
		red.OrderID,
		red.UserID,
		red.Code,
		pgconv.DecimalToNumeric(red.Rate),
		pgconv.DecimalToNumeric(red.Subtotal),
		pgconv.DecimalToNumeric(red.DiscountAmount),
		pgconv.TimeToPgtype(red.RedeemedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record promotion redemption", err)
	}
	return nil
}
