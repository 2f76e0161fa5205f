package backend

import (
	"context"
	"net/http"

	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"
)

type OrderService struct {
	client *Client
}

func NewOrderService(client *Client) *OrderService {
	return &OrderService{client: client}
}

var _ usecase.OrderService = (*OrderService)(nil)

// CreateOrder places an order from the user's server-side cart.
func (s *OrderService) CreateOrder(ctx context.Context, token, idempotencyKey string) (*usecase.PlacedOrder, error) {
	var payload orderPayload
	err := s.client.do(ctx, request{
		method:         http.MethodPost,
		path:           []string{"orders"},
		token:          token,
		idempotencyKey: idempotencyKey,
		body:           struct{}{},
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.orderID() == "" {
		return nil, errs.New("backend returned order without id")
	}

	placed := &usecase.PlacedOrder{
		ID:          payload.orderID(),
		OrderNumber: payload.OrderNumber,
		Status:      order.StatusPlaced,
		PlacedAt:    parseTime(payload.PlacedAt),
	}
	if st, err := order.ParseStatus(payload.Status); err == nil {
		placed.Status = st
	}
	return placed, nil
}

func (s *OrderService) ListOrders(ctx context.Context, token string) ([]*order.Order, error) {
	var payloads []orderPayload
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"orders"},
		token:  token,
	}, &payloads)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(payloads))
	for _, p := range payloads {
		o, err := p.toDomain()
		if err != nil {
			return nil, errs.Wrap(err, "decode order")
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, token, id string) (*order.Order, error) {
	var payload orderPayload
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"orders", id},
		token:  token,
		entity: "order",
		id:     id,
	}, &payload)
	if err != nil {
		return nil, err
	}
	o, err := payload.toDomain()
	if err != nil {
		return nil, errs.Wrap(err, "decode order")
	}
	return o, nil
}

// CancelOrder only acknowledges; the order is read back for its new status.
func (s *OrderService) CancelOrder(ctx context.Context, token, id string) (*order.Order, error) {
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   []string{"orders", id, "cancel"},
		token:  token,
		body:   struct{}{},
		entity: "order",
		id:     id,
	}, nil)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, token, id)
}
