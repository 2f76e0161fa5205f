package shared

import (
	"time"

	"github.com/shopspring/decimal"
)

// Redemption is the audit row written when a placed order carried a promotion.
type Redemption struct {
	OrderID        string
	UserID         string
	Code           string
	Rate           decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	RedeemedAt     time.Time
}
