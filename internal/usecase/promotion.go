package usecase

//go:generate mockgen -source=promotion.go -destination=../../tests/mock/usecase/promotion.go -package=usecasemock

import (
	"context"
	"time"

	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/errs"
)

// PromotionOutcome pairs the engine result with the totals it leaves behind.
// MessageTTL tells the client when to dismiss Result.Message.
type PromotionOutcome struct {
	Result     promotion.Result
	Applied    *promotion.Promotion
	Totals     pricing.OrderTotals
	MessageTTL time.Duration
}

type PromotionUseCase interface {
	Apply(ctx context.Context, sess *user.Session, code string) (*PromotionOutcome, error)
	Clear(ctx context.Context, sess *user.Session) (*CartView, error)
}

type promotionUseCaseImpl struct {
	engine     *promotion.Engine
	promos     CheckoutPromotionStore
	state      *CartState
	messageTTL time.Duration
}

func NewPromotionUseCase(
	engine *promotion.Engine,
	promos CheckoutPromotionStore,
	state *CartState,
	messageTTL time.Duration,
) PromotionUseCase {
	return &promotionUseCaseImpl{
		engine:     engine,
		promos:     promos,
		state:      state,
		messageTTL: messageTTL,
	}
}

// Apply replaces any applied promotion with the submitted code. An invalid
// code is reported in the result and leaves no promotion applied, so the
// totals always agree with the result.
func (u *promotionUseCaseImpl) Apply(ctx context.Context, sess *user.Session, code string) (*PromotionOutcome, error) {
	c, err := u.state.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	res, err := u.engine.Apply(ctx, code, c.Subtotal())
	if err != nil {
		return nil, errs.Wrap(err, "look up promotion")
	}

	if p := res.Promotion(); p != nil {
		if err := u.promos.Put(ctx, sess.UserID(), *p); err != nil {
			return nil, errs.Wrap(err, "store checkout promotion")
		}
		c.ApplyPromotion(*p)
	} else if c.Promotion() != nil {
		// The submitted code replaces the applied one even when it matches nothing.
		if err := u.promos.Clear(ctx, sess.UserID()); err != nil {
			return nil, errs.Wrap(err, "clear checkout promotion")
		}
		c.ClearPromotion()
	}

	return &PromotionOutcome{
		Result:     res,
		Applied:    c.Promotion(),
		Totals:     pricing.ForCart(c),
		MessageTTL: u.messageTTL,
	}, nil
}

func (u *promotionUseCaseImpl) Clear(ctx context.Context, sess *user.Session) (*CartView, error) {
	if err := u.promos.Clear(ctx, sess.UserID()); err != nil {
		return nil, errs.Wrap(err, "clear checkout promotion")
	}

	c, err := u.state.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	c.ClearPromotion()
	return newCartView(c), nil
}
