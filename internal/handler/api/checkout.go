package api

import (
	"net/http"
	"strings"

	resdto "toy-rental-storefront/internal/handler/dto/response"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

type CheckoutHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Checkout summary
// @Description Same totals as the cart page
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Router /checkout/summary [get]
func (h *CheckoutHandler) Summary(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.checkoutUseCase.Summary(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	resp, err := resdto.FromCartView(view)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Place order
// @Description Places an order from the current cart
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Param Idempotency-Key header string false "UUID forwarded to the order service"
// @Success 201 {object} resdto.OrderConfirmationResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response "Cart is empty"
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	key := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if key != "" {
		if _, err := uuid.Parse(key); err != nil {
			badRequest(c, err, "Idempotency-Key must be a UUID")
			return
		}
	}

	confirmation, err := h.checkoutUseCase.PlaceOrder(c.Request.Context(), sess, key)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	resp, err := resdto.FromConfirmation(confirmation)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
