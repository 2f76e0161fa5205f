package api

import (
	"net/http"

	"toy-rental-storefront/internal/domain/order"
	resdto "toy-rental-storefront/internal/handler/dto/response"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderUseCase usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

// @Summary List orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.OrderResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	orders, err := h.orderUseCase.List(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	resp, err := resdto.FromOrders(orders)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	o, err := h.orderUseCase.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	h.renderOrder(c, o)
}

// @Summary Request order cancellation
// @Description The order service decides; a rejection returns 409 with the current order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	o, err := h.orderUseCase.Cancel(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err, orderDetail)
		return
	}
	h.renderOrder(c, o)
}

func (h *OrderHandler) renderOrder(c *gin.Context, o *order.Order) {
	resp, err := resdto.FromOrder(o)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func orderDetail(reconciled any) any {
	o, ok := reconciled.(*order.Order)
	if !ok || o == nil {
		return nil
	}
	resp, err := resdto.FromOrder(o)
	if err != nil {
		return nil
	}
	return resp
}
