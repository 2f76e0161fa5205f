//go:build unit

package pricing_test

import (
	"testing"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestCompute(t *testing.T) {
	toy20 := &promotion.Promotion{Code: "TOY20", Rate: decimal.RequireFromString("0.20")}

	testCases := []struct {
		name     string
		items    []cart.LineItem
		promo    *promotion.Promotion
		expected pricing.OrderTotals
	}{
		{
			name:  "empty cart",
			items: nil,
			expected: pricing.OrderTotals{
				Subtotal: decimal.Zero, DiscountAmount: decimal.Zero, GrandTotal: decimal.Zero, Rate: decimal.Zero,
			},
		},
		{
			name:  "no promotion",
			items: builder.LineItems("300", "700"),
			expected: pricing.OrderTotals{
				Subtotal: decimal.NewFromInt(1000), DiscountAmount: decimal.Zero, GrandTotal: decimal.NewFromInt(1000),
				ItemCount: 2, Rate: decimal.Zero,
			},
		},
		{
			name:  "TOY20 on 1000",
			items: builder.LineItems("300", "700"),
			promo: toy20,
			expected: pricing.OrderTotals{
				Subtotal: decimal.NewFromInt(1000), DiscountAmount: decimal.NewFromInt(200), GrandTotal: decimal.NewFromInt(800),
				ItemCount: 2, PromotionCode: "TOY20", Rate: decimal.RequireFromString("0.20"),
			},
		},
		{
			name:  "quantity multiplies unit price",
			items: []cart.LineItem{builder.NewLineItemBuilder().WithPrice("250").WithQuantity(3).BuildDomain()},
			expected: pricing.OrderTotals{
				Subtotal: decimal.NewFromInt(750), DiscountAmount: decimal.Zero, GrandTotal: decimal.NewFromInt(750),
				ItemCount: 3, Rate: decimal.Zero,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := pricing.Compute(tc.items, tc.promo)
			if diff := cmp.Diff(tc.expected, actual, decimalEqual); diff != "" {
				t.Errorf("totals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeIsPure(t *testing.T) {
	items := builder.LineItems("333.33", "166.67")
	promo := &promotion.Promotion{Code: "TOY10", Rate: decimal.RequireFromString("0.10")}
	before := append([]cart.LineItem(nil), items...)

	first := pricing.Compute(items, promo)
	second := pricing.Compute(items, promo)

	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Errorf("repeated compute differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, items, decimalEqual); diff != "" {
		t.Errorf("inputs were mutated:\n%s", diff)
	}
}

func TestForCartMatchesCompute(t *testing.T) {
	c, err := cart.New(builder.LineItems("1000")...)
	require.NoError(t, err)
	c.ApplyPromotion(promotion.Promotion{Code: "TOY20", Rate: decimal.RequireFromString("0.20")})

	direct := pricing.Compute(c.Items(), c.Promotion())
	viaCart := pricing.ForCart(c)
	if diff := cmp.Diff(direct, viaCart, decimalEqual); diff != "" {
		t.Errorf("ForCart diverges from Compute:\n%s", diff)
	}
}

func TestDisplay(t *testing.T) {
	totals := pricing.Compute(builder.LineItems("1012.345"), &promotion.Promotion{Code: "TOY20", Rate: decimal.RequireFromString("0.20")})
	display := totals.Display()

	assert.Equal(t, "1012.35", display.Subtotal)
	assert.Equal(t, "202.47", display.DiscountAmount)
	assert.Equal(t, "809.88", display.GrandTotal)
	assert.Equal(t, "TOY20", display.PromotionCode)
}
