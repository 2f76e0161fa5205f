package api

import (
	"net/http"

	reqdto "toy-rental-storefront/internal/handler/dto/request"
	resdto "toy-rental-storefront/internal/handler/dto/response"
	"toy-rental-storefront/internal/handler/middleware"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productUseCase usecase.ProductUseCase
}

func NewProductHandler(productUseCase usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

// @Summary Product detail
// @Description Product with its rental options sorted by duration
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductDetailResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	detail, err := h.productUseCase.GetDetail(c.Request.Context(), c.Param("id"), sess)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProductDetail(detail))
}

// @Summary Rental quote
// @Description End date and price for a duration and start date, without touching the cart
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Param days query int true "Rental duration in days"
// @Param startDate query string true "Start date (YYYY-MM-DD)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /products/{id}/quote [get]
func (h *ProductHandler) Quote(c *gin.Context) {
	var q reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err, "Invalid query parameters")
		return
	}

	sel, err := h.productUseCase.Quote(c.Request.Context(), c.Param("id"), q.Days, q.StartDate)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSelection(sel))
}
