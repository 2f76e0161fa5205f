package response

import (
	"time"

	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/usecase"
)

type OrderResponse struct {
	ID                string             `json:"id"`
	OrderNumber       string             `json:"orderNumber"`
	Status            string             `json:"status"`
	Items             []LineItemResponse `json:"items"`
	Subtotal          string             `json:"subtotal"`
	DiscountAmount    string             `json:"discountAmount"`
	ItemCount         int                `json:"itemCount"`
	TotalDue          string             `json:"totalDue"`
	PlacedAt          time.Time          `json:"placedAt"`
	CanRequestCancel  bool               `json:"canRequestCancel"`
	CanRequestConfirm bool               `json:"canRequestConfirm"`
}

func FromOrder(o *order.Order) (*OrderResponse, error) {
	items, err := FromLineItems(o.Items())
	if err != nil {
		return nil, err
	}
	totals := o.Totals()
	return &OrderResponse{
		ID:                o.ID(),
		OrderNumber:       o.OrderNumber(),
		Status:            o.Status().String(),
		Items:             items,
		Subtotal:          pricing.FormatAmount(totals.Subtotal),
		DiscountAmount:    pricing.FormatAmount(totals.DiscountAmount),
		ItemCount:         totals.ItemCount,
		TotalDue:          pricing.FormatAmount(o.TotalDue()),
		PlacedAt:          o.PlacedAt(),
		CanRequestCancel:  o.CanRequestCancel(),
		CanRequestConfirm: o.CanRequestConfirm(),
	}, nil
}

func FromOrders(orders []*order.Order) ([]*OrderResponse, error) {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp, err := FromOrder(o)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

type OrderConfirmationResponse struct {
	Order  *OrderResponse `json:"order"`
	Totals TotalsResponse `json:"totals"`
}

func FromConfirmation(c *usecase.OrderConfirmation) (*OrderConfirmationResponse, error) {
	o, err := FromOrder(c.Order)
	if err != nil {
		return nil, err
	}
	return &OrderConfirmationResponse{
		Order:  o,
		Totals: FromTotals(c.Totals),
	}, nil
}
