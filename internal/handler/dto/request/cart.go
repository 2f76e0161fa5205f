package request

import "toy-rental-storefront/internal/usecase"

// AddCartItemRequest is validated twice: binding rejects malformed bodies with
// 400, the selection builder rejects past dates and unknown durations with 422.
type AddCartItemRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	DurationDays int    `json:"durationDays" binding:"required,min=1"`
	StartDate    string `json:"startDate" binding:"required"`
}

func (r *AddCartItemRequest) ToInput() usecase.AddRentalInput {
	return usecase.AddRentalInput{
		ProductID:    r.ProductID,
		DurationDays: r.DurationDays,
		StartDate:    r.StartDate,
	}
}

type ApplyPromotionRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}
