//go:build unit

package api_test

import (
	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/handler/middleware"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

const testToken = "test-jwt-token"

// injectSession stands in for RequireAuth: any Authorization header
// authenticates as sess.
func injectSession(sess *user.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			middleware.SetSession(c, sess)
		}
		c.Next()
	}
}

func cartView(promo *promotion.Promotion, items ...cart.LineItem) *usecase.CartView {
	return &usecase.CartView{
		Items:     items,
		Promotion: promo,
		Totals:    pricing.Compute(items, promo),
	}
}
