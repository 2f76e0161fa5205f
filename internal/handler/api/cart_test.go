//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/handler/api"
	resdto "toy-rental-storefront/internal/handler/dto/response"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"
	"toy-rental-storefront/tests/common/builder"
	"toy-rental-storefront/tests/common/httptest"
	"toy-rental-storefront/tests/common/testutil"
	usecasemock "toy-rental-storefront/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCart      *usecasemock.MockCartUseCase
	mockPromotion *usecasemock.MockPromotionUseCase
	sess          *user.Session
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCart = usecasemock.NewMockCartUseCase(s.mockCtrl)
	s.mockPromotion = usecasemock.NewMockPromotionUseCase(s.mockCtrl)
	s.sess = builder.NewSessionBuilder().BuildDomain()

	h := api.NewCartHandler(s.mockCart, s.mockPromotion)
	g := s.router.Group("/cart", injectSession(s.sess))
	g.GET("", h.GetCart)
	g.POST("/items", h.AddItem)
	g.DELETE("/items/:id", h.RemoveItem)
	g.POST("/promotion", h.ApplyPromotion)
	g.DELETE("/promotion", h.ClearPromotion)
}

func (s *CartHandlerTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) TestGetCart() {
	s.Run("success: items and totals as display strings", func() {
		promo, err := promotion.NewPromotion("TOY10", decimal.RequireFromString("0.10"))
		s.Require().NoError(err)
		view := cartView(&promo, builder.LineItems("500", "400")...)
		s.mockCart.EXPECT().Get(gomock.Any(), s.sess).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, testToken)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Items, 2)
		s.Equal("li-1", response.Items[0].ID)
		s.Equal("500.00", response.Items[0].UnitPrice)
		s.Equal("2024-03-01", response.Items[0].StartDate)
		s.Equal("2024-03-07", response.Items[0].EndDate)
		s.Equal("900.00", response.Totals.Subtotal)
		s.Equal("90.00", response.Totals.DiscountAmount)
		s.Equal("810.00", response.Totals.GrandTotal)
		s.Equal("TOY10", response.Totals.PromotionCode)
		s.Equal("10", response.Totals.PercentOff)
		s.Require().NotNil(response.Promotion)
		s.Equal("TOY10", response.Promotion.Code)
	})

	s.Run("error: 401 without a session", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Authentication required")
	})

	s.Run("error: 503 retryable when the cart service times out", func() {
		s.mockCart.EXPECT().Get(gomock.Any(), s.sess).
			Return(nil, errs.Mark(errors.New("deadline"), errs.ErrBackendTimeout)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, testToken)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Service temporarily unavailable")
		s.True(body.Error.Retryable)
	})
}

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"
	reqBody := map[string]any{
		"productId":    "p1",
		"durationDays": 7,
		"startDate":    "2024-03-01",
	}

	s.Run("success: 201 with the updated cart", func() {
		input := usecase.AddRentalInput{ProductID: "p1", DurationDays: 7, StartDate: "2024-03-01"}
		view := cartView(nil, builder.LineItems("500")...)
		s.mockCart.EXPECT().AddRental(gomock.Any(), s.sess, input).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testToken)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Len(response.Items, 1)
		s.Equal(1, response.Totals.ItemCount)
		s.Equal("500.00", response.Totals.GrandTotal)
		s.Nil(response.Promotion)
	})

	s.Run("error: 400 on malformed bodies", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing productId", mutate: testutil.Field("productId", nil)},
			{name: "zero durationDays", mutate: testutil.Field("durationDays", 0)},
			{name: "missing startDate", mutate: testutil.Field("startDate", nil)},
			{name: "durationDays as string", mutate: testutil.Field("durationDays", "seven")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, testToken)

				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 422 names the rejected field", func() {
		s.mockCart.EXPECT().AddRental(gomock.Any(), s.sess, gomock.Any()).
			Return(nil, errs.NewValidation("startDate", "start date cannot be in the past")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testToken)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "start date cannot be in the past")
		s.Equal("startDate", body.Error.Field)
		s.False(body.Error.Retryable)
	})

	s.Run("error: 404 for an unknown product", func() {
		s.mockCart.EXPECT().AddRental(gomock.Any(), s.sess, gomock.Any()).
			Return(nil, errs.Wrap(errs.NewNotFound("product", "p1"), "load product")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, testToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "product")
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	s.Run("success: returns the cart without the line", func() {
		view := cartView(nil, builder.LineItems("400")...)
		s.mockCart.EXPECT().RemoveLineItem(gomock.Any(), s.sess, "li-2").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/li-2", nil, testToken)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
	})

	s.Run("error: 409 carries the re-fetched cart", func() {
		reconciled := cartView(nil, builder.LineItems("500", "400")...)
		cause := errs.Mark(errors.New("502 bad gateway"), errs.ErrBackendUnavailable)
		s.mockCart.EXPECT().RemoveLineItem(gomock.Any(), s.sess, "li-2").
			Return(nil, errs.NewSync("remove line item", cause, reconciled)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/li-2", nil, testToken)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "showing the latest state")
		s.True(body.Error.Retryable)
		var detail resdto.CartResponse
		httptest.DecodeDetail(s.T(), body, &detail)
		s.Len(detail.Items, 2)
		s.Equal("900.00", detail.Totals.Subtotal)
	})

	s.Run("error: 409 without detail when the cart could not be re-fetched", func() {
		s.mockCart.EXPECT().RemoveLineItem(gomock.Any(), s.sess, "li-2").
			Return(nil, errs.NewSync("remove line item", errs.ErrConflict, nil)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/li-2", nil, testToken)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
		s.Empty(body.Detail)
		s.False(body.Error.Retryable)
	})

	s.Run("error: 404 for a line not in the cart", func() {
		s.mockCart.EXPECT().RemoveLineItem(gomock.Any(), s.sess, "nope").
			Return(nil, errs.NewNotFound("line item", "nope")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/nope", nil, testToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *CartHandlerTestSuite) TestApplyPromotion() {
	url := "/cart/promotion"

	s.Run("success: valid code reports the discount", func() {
		promo, err := promotion.NewPromotion("TOY20", decimal.RequireFromString("0.20"))
		s.Require().NoError(err)
		items := builder.LineItems("500", "500")
		outcome := &usecase.PromotionOutcome{
			Result: promotion.Result{
				Code:           "TOY20",
				Rate:           promo.Rate,
				DiscountAmount: decimal.RequireFromString("200"),
				Message:        "Promo code applied! You saved 20%",
				Valid:          true,
			},
			Applied:    &promo,
			Totals:     cartView(&promo, items...).Totals,
			MessageTTL: 3 * time.Second,
		}
		s.mockPromotion.EXPECT().Apply(gomock.Any(), s.sess, "toy20").Return(outcome, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "toy20"}, testToken)

		var response resdto.PromotionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Valid)
		s.Equal("200.00", response.DiscountAmount)
		s.Equal(3, response.MessageTTLSeconds)
		s.Equal("800.00", response.Totals.GrandTotal)
		s.Require().NotNil(response.Applied)
		s.Equal("20", response.Applied.PercentOff)
	})

	s.Run("success: invalid code is 200 with valid=false", func() {
		outcome := &usecase.PromotionOutcome{
			Result: promotion.Result{
				Code:           "XYZ",
				Rate:           decimal.Zero,
				DiscountAmount: decimal.Zero,
				Message:        promotion.MessageInvalid,
			},
			Totals:     cartView(nil, builder.LineItems("900")...).Totals,
			MessageTTL: 3 * time.Second,
		}
		s.mockPromotion.EXPECT().Apply(gomock.Any(), s.sess, "XYZ").Return(outcome, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "XYZ"}, testToken)

		var response resdto.PromotionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Valid)
		s.Equal(promotion.MessageInvalid, response.Message)
		s.Equal("0.00", response.DiscountAmount)
		s.Nil(response.Applied)
	})

	s.Run("error: 400 when code is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, testToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *CartHandlerTestSuite) TestClearPromotion() {
	s.Run("success: totals drop the discount", func() {
		view := cartView(nil, builder.LineItems("500", "400")...)
		s.mockPromotion.EXPECT().Clear(gomock.Any(), s.sess).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/promotion", nil, testToken)

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("0.00", response.Totals.DiscountAmount)
		s.Equal("900.00", response.Totals.GrandTotal)
		s.Empty(response.Totals.PromotionCode)
	})
}
