package response

import (
	"errors"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/usecase"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

var errUnexpectedType = errors.New("unexpected source type")

// Amounts and dates leave the service as display strings; clients never do
// arithmetic on them.
var displayCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				d, ok := src.(decimal.Decimal)
				if !ok {
					return nil, errUnexpectedType
				}
				return pricing.FormatAmount(d), nil
			},
		},
		{
			SrcType: rental.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				d, ok := src.(rental.Date)
				if !ok {
					return nil, errUnexpectedType
				}
				return d.String(), nil
			},
		},
	},
}

type LineItemResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	DurationDays int    `json:"durationDays"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	UnitPrice    string `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"lineTotal"`
}

type TotalsResponse struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discountAmount"`
	GrandTotal     string `json:"grandTotal"`
	ItemCount      int    `json:"itemCount"`
	PromotionCode  string `json:"promotionCode,omitempty"`
	PercentOff     string `json:"percentOff,omitempty"`
}

type AppliedPromotionResponse struct {
	Code       string `json:"code"`
	PercentOff string `json:"percentOff"`
}

type CartResponse struct {
	Items     []LineItemResponse        `json:"items"`
	Promotion *AppliedPromotionResponse `json:"promotion,omitempty"`
	Totals    TotalsResponse            `json:"totals"`
}

func FromLineItems(items []cart.LineItem) ([]LineItemResponse, error) {
	out := make([]LineItemResponse, 0, len(items))
	if err := copier.CopyWithOption(&out, &items, displayCopyOption); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].LineTotal = pricing.FormatAmount(items[i].LineTotal())
	}
	return out, nil
}

func FromTotals(t pricing.OrderTotals) TotalsResponse {
	d := t.Display()
	resp := TotalsResponse{
		Subtotal:       d.Subtotal,
		DiscountAmount: d.DiscountAmount,
		GrandTotal:     d.GrandTotal,
		ItemCount:      d.ItemCount,
		PromotionCode:  d.PromotionCode,
	}
	if t.PromotionCode != "" {
		resp.PercentOff = t.Rate.Shift(2).String()
	}
	return resp
}

func FromCartView(v *usecase.CartView) (*CartResponse, error) {
	items, err := FromLineItems(v.Items)
	if err != nil {
		return nil, err
	}
	resp := &CartResponse{
		Items:  items,
		Totals: FromTotals(v.Totals),
	}
	if v.Promotion != nil {
		resp.Promotion = &AppliedPromotionResponse{
			Code:       v.Promotion.Code,
			PercentOff: v.Promotion.PercentOff().String(),
		}
	}
	return resp, nil
}

type PromotionResponse struct {
	Code              string                    `json:"code"`
	Valid             bool                      `json:"valid"`
	Message           string                    `json:"message"`
	MessageTTLSeconds int                       `json:"messageTtlSeconds"`
	DiscountAmount    string                    `json:"discountAmount"`
	Applied           *AppliedPromotionResponse `json:"applied,omitempty"`
	Totals            TotalsResponse            `json:"totals"`
}

func FromPromotionOutcome(o *usecase.PromotionOutcome) PromotionResponse {
	resp := PromotionResponse{
		Code:              o.Result.Code,
		Valid:             o.Result.Valid,
		Message:           o.Result.Message,
		MessageTTLSeconds: int(o.MessageTTL.Seconds()),
		DiscountAmount:    pricing.FormatAmount(o.Result.DiscountAmount),
		Totals:            FromTotals(o.Totals),
	}
	if o.Applied != nil {
		resp.Applied = &AppliedPromotionResponse{
			Code:       o.Applied.Code,
			PercentOff: o.Applied.PercentOff().String(),
		}
	}
	return resp
}
