package api

import (
	"net/http"

	reqdto "toy-rental-storefront/internal/handler/dto/request"
	resdto "toy-rental-storefront/internal/handler/dto/response"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartUseCase      usecase.CartUseCase
	promotionUseCase usecase.PromotionUseCase
}

func NewCartHandler(cartUseCase usecase.CartUseCase, promotionUseCase usecase.PromotionUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase:      cartUseCase,
		promotionUseCase: promotionUseCase,
	}
}

// @Summary Get cart
// @Description Server cart with totals
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.cartUseCase.Get(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, cartDetail)
		return
	}
	h.renderCart(c, http.StatusOK, view)
}

// @Summary Add rental to cart
// @Description Adds one line for the selected duration and start date
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.AddCartItemRequest true "Rental selection"
// @Success 201 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	view, err := h.cartUseCase.AddRental(c.Request.Context(), sess, req.ToInput())
	if err != nil {
		respondError(c, err, cartDetail)
		return
	}
	h.renderCart(c, http.StatusCreated, view)
}

// @Summary Remove cart line
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Line item ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "Removal failed; detail holds the re-fetched cart"
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.cartUseCase.RemoveLineItem(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err, cartDetail)
		return
	}
	h.renderCart(c, http.StatusOK, view)
}

// @Summary Apply promotion code
// @Description An unknown code is a 200 with valid=false; the applied promotion is unchanged
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ApplyPromotionRequest true "Promotion code"
// @Success 200 {object} resdto.PromotionResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/promotion [post]
func (h *CartHandler) ApplyPromotion(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req reqdto.ApplyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	outcome, err := h.promotionUseCase.Apply(c.Request.Context(), sess, req.Code)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPromotionOutcome(outcome))
}

// @Summary Remove applied promotion
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Router /cart/promotion [delete]
func (h *CartHandler) ClearPromotion(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.promotionUseCase.Clear(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	h.renderCart(c, http.StatusOK, view)
}

func (h *CartHandler) renderCart(c *gin.Context, status int, view *usecase.CartView) {
	resp, err := resdto.FromCartView(view)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(status, resp)
}

func cartDetail(reconciled any) any {
	view, ok := reconciled.(*usecase.CartView)
	if !ok {
		return nil
	}
	resp, err := resdto.FromCartView(view)
	if err != nil {
		return nil
	}
	return resp
}
