//go:build unit

package promotion_test

import (
	"context"
	"errors"
	"testing"

	"toy-rental-storefront/internal/domain/promotion"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCatalog struct{ err error }

func (f failingCatalog) Lookup(context.Context, string) (promotion.Promotion, bool, error) {
	return promotion.Promotion{}, false, f.err
}

func TestEngineApply(t *testing.T) {
	engine := promotion.NewEngine(promotion.DefaultCatalog())
	ctx := context.Background()
	subtotal := decimal.RequireFromString("1000")

	t.Run("TOY20 on 1000 discounts 200", func(t *testing.T) {
		res, err := engine.Apply(ctx, "TOY20", subtotal)
		require.NoError(t, err)

		assert.True(t, res.Valid)
		assert.Equal(t, "TOY20", res.Code)
		assert.True(t, decimal.RequireFromString("200").Equal(res.DiscountAmount))
		assert.True(t, decimal.RequireFromString("800").Equal(subtotal.Sub(res.DiscountAmount)))
		require.NotNil(t, res.Promotion())
		assert.Equal(t, "TOY20", res.Promotion().Code)
	})

	t.Run("codes are case and space insensitive", func(t *testing.T) {
		res, err := engine.Apply(ctx, "  toy10 ", subtotal)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, "TOY10", res.Code)
	})

	t.Run("unknown code is a negative result", func(t *testing.T) {
		res, err := engine.Apply(ctx, "XYZ", subtotal)
		require.NoError(t, err)

		assert.False(t, res.Valid)
		assert.Equal(t, promotion.MessageInvalid, res.Message)
		assert.True(t, res.DiscountAmount.IsZero())
		assert.Nil(t, res.Promotion())
	})

	t.Run("empty code asks for input", func(t *testing.T) {
		res, err := engine.Apply(ctx, "   ", subtotal)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, promotion.MessageEmpty, res.Message)
	})

	t.Run("same input gives same result", func(t *testing.T) {
		first, err := engine.Apply(ctx, "TOY20", subtotal)
		require.NoError(t, err)
		second, err := engine.Apply(ctx, "TOY20", subtotal)
		require.NoError(t, err)
		assert.Equal(t, first.Message, second.Message)
		assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := promotion.NewEngine(failingCatalog{err: boom}).Apply(ctx, "TOY20", subtotal)
		assert.ErrorIs(t, err, boom)
	})
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	override := promotion.NewStaticCatalog(promotion.Promotion{Code: "toy20", Rate: decimal.RequireFromString("0.25")})
	chain := promotion.Chain{override, promotion.DefaultCatalog()}

	t.Run("first catalog wins", func(t *testing.T) {
		p, ok, err := chain.Lookup(ctx, "TOY20")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("0.25").Equal(p.Rate))
	})

	t.Run("falls through to later catalogs", func(t *testing.T) {
		p, ok, err := chain.Lookup(ctx, "TOY10")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("0.10").Equal(p.Rate))
	})

	t.Run("miss everywhere", func(t *testing.T) {
		_, ok, err := chain.Lookup(ctx, "NOPE")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNewPromotion(t *testing.T) {
	_, err := promotion.NewPromotion("BAD", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, promotion.ErrInvalidRate)

	p, err := promotion.NewPromotion(" half ", decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "HALF", p.Code)
	assert.True(t, decimal.NewFromInt(50).Equal(p.PercentOff()))
}
