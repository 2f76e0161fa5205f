package backend

import (
	"context"
	"net/http"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"
)

type CartService struct {
	client *Client
}

func NewCartService(client *Client) *CartService {
	return &CartService{client: client}
}

var _ usecase.CartService = (*CartService)(nil)

func (s *CartService) GetCart(ctx context.Context, token string) ([]cart.LineItem, error) {
	var payload cartPayload
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"cart"},
		token:  token,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return lineItemsToDomain(payload.Items)
}

func (s *CartService) AddItem(ctx context.Context, token string, req usecase.AddItemRequest) (cart.LineItem, error) {
	var created lineItemPayload
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   []string{"cart", "items"},
		token:  token,
		body: addItemPayload{
			ProductID:   req.ProductID,
			OptionIndex: req.OptionIndex,
			StartDate:   req.StartDate.String(),
		},
		entity: "product",
		id:     req.ProductID,
	}, &created)
	if err != nil {
		return cart.LineItem{}, err
	}
	if created.ID == "" {
		return cart.LineItem{}, errs.New("backend returned line item without id")
	}
	if created.ProductID == "" {
		return cart.LineItem{ID: created.ID}, nil
	}
	return created.toDomain()
}

func (s *CartService) RemoveItem(ctx context.Context, token, itemID string) error {
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   []string{"cart", "items", itemID},
		token:  token,
		entity: "line item",
		id:     itemID,
	}, nil)
}
