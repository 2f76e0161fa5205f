package response

import (
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/usecase"
)

type RentalOptionResponse struct {
	Index        int    `json:"index"`
	DurationDays int    `json:"durationDays"`
	Price        string `json:"price"`
}

type ProductDetailResponse struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	OriginalPrice   string                 `json:"originalPrice"`
	DiscountedPrice string                 `json:"discountedPrice"`
	HasDiscount     bool                   `json:"hasDiscount"`
	Images          []string               `json:"images"`
	RentalOptions   []RentalOptionResponse `json:"rentalOptions"`
	MinStartDate    string                 `json:"minStartDate"`
	CartItemCount   int                    `json:"cartItemCount"`
}

// Index is the option's position in the catalog's list, which is what the
// add-to-cart request refers to.
func FromProductDetail(d *usecase.ProductDetail) ProductDetailResponse {
	catalogOrder := d.Product.Options()
	opts := make([]RentalOptionResponse, 0, len(d.Options))
	for _, o := range d.Options {
		_, idx, _ := catalogOrder.Find(o.DurationDays)
		opts = append(opts, RentalOptionResponse{
			Index:        idx,
			DurationDays: o.DurationDays,
			Price:        pricing.FormatAmount(o.Price),
		})
	}

	p := d.Product
	return ProductDetailResponse{
		ID:              p.ID(),
		Title:           p.Title(),
		Description:     p.Description(),
		OriginalPrice:   pricing.FormatAmount(p.OriginalPrice()),
		DiscountedPrice: pricing.FormatAmount(p.DiscountedPrice()),
		HasDiscount:     p.HasDiscount(),
		Images:          p.Images(),
		RentalOptions:   opts,
		MinStartDate:    d.Today.String(),
		CartItemCount:   d.CartItemCount,
	}
}

type QuoteResponse struct {
	ProductID    string `json:"productId"`
	DurationDays int    `json:"durationDays"`
	OptionIndex  int    `json:"optionIndex"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	UnitPrice    string `json:"unitPrice"`
	CoveredDays  int    `json:"coveredDays"`
}

func FromSelection(s *rental.RentalSelection) QuoteResponse {
	return QuoteResponse{
		ProductID:    s.ProductID,
		DurationDays: s.DurationDays,
		OptionIndex:  s.OptionIndex,
		StartDate:    s.StartDate.String(),
		EndDate:      s.EndDate.String(),
		UnitPrice:    pricing.FormatAmount(s.UnitPrice),
		CoveredDays:  s.CoveredDays(),
	}
}
