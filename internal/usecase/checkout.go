package usecase

//go:generate mockgen -source=checkout.go -destination=../../tests/mock/usecase/checkout.go -package=usecasemock

import (
	"context"
	"log/slog"

	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

const opPlaceOrder = "place order"

// OrderConfirmation is what the confirmation page renders. Totals are the
// checkout figures including the promotion; the order keeps the server total.
type OrderConfirmation struct {
	Order  *order.Order
	Totals pricing.OrderTotals
}

type CheckoutUseCase interface {
	Summary(ctx context.Context, sess *user.Session) (*CartView, error)
	PlaceOrder(ctx context.Context, sess *user.Session, idempotencyKey string) (*OrderConfirmation, error)
}

type checkoutUseCaseImpl struct {
	orders OrderService
	state  *CartState
	uow    shared.UnitOfWork
	clock  clock.Clock
}

func NewCheckoutUseCase(orders OrderService, state *CartState, uow shared.UnitOfWork, clock clock.Clock) CheckoutUseCase {
	return &checkoutUseCaseImpl{
		orders: orders,
		state:  state,
		uow:    uow,
		clock:  clock,
	}
}

// Summary shows the same totals as the cart page.
func (u *checkoutUseCaseImpl) Summary(ctx context.Context, sess *user.Session) (*CartView, error) {
	c, err := u.state.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return newCartView(c), nil
}

func (u *checkoutUseCaseImpl) PlaceOrder(ctx context.Context, sess *user.Session, idempotencyKey string) (*OrderConfirmation, error) {
	unlock := u.state.locks.Lock(sess.UserID())
	defer unlock()

	c, err := u.state.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errs.NewValidation("cart", "cart is empty")
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	totals := pricing.ForCart(c)
	placed, err := u.orders.CreateOrder(ctx, sess.BackendToken(), idempotencyKey)
	if err != nil {
		return nil, errs.Wrap(err, opPlaceOrder)
	}

	placedAt := placed.PlacedAt
	if placedAt.IsZero() {
		placedAt = u.clock.Now()
	}
	o, err := order.FromCart(c, placed.ID, placed.OrderNumber, placedAt)
	if err != nil {
		return nil, errs.Wrap(err, "snapshot order")
	}
	if placed.Status.IsValid() && placed.Status != o.Status() {
		o = o.WithStatus(placed.Status)
	}

	if promo := c.Promotion(); promo != nil {
		u.recordRedemption(ctx, shared.Redemption{
			OrderID:        o.ID(),
			UserID:         sess.UserID(),
			Code:           promo.Code,
			Rate:           promo.Rate,
			Subtotal:       totals.Subtotal,
			DiscountAmount: totals.DiscountAmount,
			RedeemedAt:     placedAt,
		})
		if err := u.state.promos.Clear(ctx, sess.UserID()); err != nil {
			slog.Warn("clear checkout promotion failed", "user_id", sess.UserID(), "error", err.Error())
		}
	}
	u.state.invalidate(ctx, sess)

	slog.Info("order placed",
		"user_id", sess.UserID(),
		"order_id", o.ID(),
		"grand_total", pricing.FormatAmount(totals.GrandTotal))

	return &OrderConfirmation{Order: o, Totals: totals}, nil
}

// recordRedemption logs failures; the order already exists upstream.
func (u *checkoutUseCaseImpl) recordRedemption(ctx context.Context, r shared.Redemption) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Redemptions().Record(ctx, tx.DB(), r)
	})
	if err != nil {
		slog.Error("record promotion redemption failed",
			"order_id", r.OrderID,
			"code", r.Code,
			"error", err.Error())
	}
}
