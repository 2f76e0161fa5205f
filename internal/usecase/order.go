package usecase

//go:generate mockgen -source=order.go -destination=../../tests/mock/usecase/order.go -package=usecasemock

import (
	"context"
	"log/slog"

	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/errs"
)

const opCancelOrder = "cancel order"

type OrderUseCase interface {
	List(ctx context.Context, sess *user.Session) ([]*order.Order, error)
	Get(ctx context.Context, sess *user.Session, id string) (*order.Order, error)
	Cancel(ctx context.Context, sess *user.Session, id string) (*order.Order, error)
}

type orderUseCaseImpl struct {
	orders OrderService
}

func NewOrderUseCase(orders OrderService) OrderUseCase {
	return &orderUseCaseImpl{orders: orders}
}

func (u *orderUseCaseImpl) List(ctx context.Context, sess *user.Session) ([]*order.Order, error) {
	orders, err := u.orders.ListOrders(ctx, sess.BackendToken())
	if err != nil {
		return nil, errs.Wrap(err, "list orders")
	}
	return orders, nil
}

func (u *orderUseCaseImpl) Get(ctx context.Context, sess *user.Session, id string) (*order.Order, error) {
	o, err := u.orders.GetOrder(ctx, sess.BackendToken(), id)
	if err != nil {
		return nil, errs.Wrap(err, "get order")
	}
	return o, nil
}

// Cancel is a request; the order service decides whether the transition
// happens. A rejected request re-fetches the order and returns a SyncError.
func (u *orderUseCaseImpl) Cancel(ctx context.Context, sess *user.Session, id string) (*order.Order, error) {
	cancelled, err := u.orders.CancelOrder(ctx, sess.BackendToken(), id)
	if err == nil {
		return cancelled, nil
	}
	if errs.IsNotFound(err) {
		return nil, err
	}

	slog.Warn("order cancellation failed, reconciling", "order_id", id, "error", err.Error())

	current, fetchErr := u.orders.GetOrder(ctx, sess.BackendToken(), id)
	if fetchErr != nil {
		return nil, errs.NewSync(opCancelOrder, err, nil)
	}
	return nil, errs.NewSync(opCancelOrder, err, current)
}
