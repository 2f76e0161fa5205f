package pricing

import (
	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/promotion"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the only rounding step in the pricing pipeline.
const DisplayPlaces int32 = 2

// OrderTotals are the derived figures behind the cart summary, the checkout
// summary and the order confirmation view. Amounts are unrounded.
type OrderTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	GrandTotal     decimal.Decimal
	ItemCount      int
	PromotionCode  string
	Rate           decimal.Decimal
}

// Compute is pure; every view that shows totals calls it instead of summing
// on its own.
func Compute(items []cart.LineItem, promo *promotion.Promotion) OrderTotals {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}

	totals := OrderTotals{
		Subtotal:       subtotal,
		DiscountAmount: decimal.Zero,
		GrandTotal:     subtotal,
		ItemCount:      count,
		Rate:           decimal.Zero,
	}
	if promo == nil {
		return totals
	}

	discount := promo.DiscountOn(subtotal)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	grand := subtotal.Sub(discount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	totals.DiscountAmount = discount
	totals.GrandTotal = grand
	totals.PromotionCode = promo.Code
	totals.Rate = promo.Rate
	return totals
}

func ForCart(c *cart.Cart) OrderTotals {
	return Compute(c.Items(), c.Promotion())
}

type DisplayTotals struct {
	Subtotal       string
	DiscountAmount string
	GrandTotal     string
	ItemCount      int
	PromotionCode  string
}

func (t OrderTotals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal:       FormatAmount(t.Subtotal),
		DiscountAmount: FormatAmount(t.DiscountAmount),
		GrandTotal:     FormatAmount(t.GrandTotal),
		ItemCount:      t.ItemCount,
		PromotionCode:  t.PromotionCode,
	}
}

// FormatAmount rounds half away from zero to two places: "810.00".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}
