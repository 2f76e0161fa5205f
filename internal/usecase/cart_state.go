package usecase

import (
	"context"
	"log/slog"
	"sync"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/pricing"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// CartView is the cart as every page renders it: items plus totals computed
// through pricing.Compute.
type CartView struct {
	Items     []cart.LineItem
	Promotion *promotion.Promotion
	Totals    pricing.OrderTotals
}

func newCartView(c *cart.Cart) *CartView {
	return &CartView{
		Items:     c.Items(),
		Promotion: c.Promotion(),
		Totals:    pricing.ForCart(c),
	}
}

// CartState assembles a user's cart from the cache (or the cart service on a
// miss) and the checkout-session promotion. Cart, promotion and checkout use
// cases share it so they all see the same state.
type CartState struct {
	carts  CartService
	cache  CartCache
	promos CheckoutPromotionStore
	locks  *keyedMutex
}

func NewCartState(carts CartService, cache CartCache, promos CheckoutPromotionStore) *CartState {
	return &CartState{
		carts:  carts,
		cache:  cache,
		promos: promos,
		locks:  newKeyedMutex(),
	}
}

// load prefers the cached copy. Cache failures degrade to a backend fetch.
func (s *CartState) load(ctx context.Context, sess *user.Session) (*cart.Cart, error) {
	return s.assemble(ctx, sess, func(ctx context.Context) ([]cart.LineItem, error) {
		items, ok, err := s.cache.Load(ctx, sess.UserID())
		if err != nil {
			slog.Warn("cart cache load failed", "user_id", sess.UserID(), "error", err.Error())
		}
		if err == nil && ok {
			return items, nil
		}
		return s.fetch(ctx, sess)
	})
}

// refresh always asks the cart service and overwrites the cached copy.
func (s *CartState) refresh(ctx context.Context, sess *user.Session) (*cart.Cart, error) {
	return s.assemble(ctx, sess, func(ctx context.Context) ([]cart.LineItem, error) {
		return s.fetch(ctx, sess)
	})
}

func (s *CartState) fetch(ctx context.Context, sess *user.Session) ([]cart.LineItem, error) {
	items, err := s.carts.GetCart(ctx, sess.BackendToken())
	if err != nil {
		return nil, errs.Wrap(err, "fetch cart")
	}
	s.store(ctx, sess, items)
	return items, nil
}

func (s *CartState) assemble(
	ctx context.Context,
	sess *user.Session,
	items func(ctx context.Context) ([]cart.LineItem, error),
) (*cart.Cart, error) {
	var (
		lines []cart.LineItem
		promo *promotion.Promotion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lines, err = items(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		promo, err = s.promos.Get(gctx, sess.UserID())
		if err != nil {
			return errs.Wrap(err, "load checkout promotion")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c, err := cart.New(lines...)
	if err != nil {
		return nil, errs.Wrap(err, "assemble cart")
	}
	if promo != nil {
		c.ApplyPromotion(*promo)
	}
	return c, nil
}

func (s *CartState) store(ctx context.Context, sess *user.Session, items []cart.LineItem) {
	if err := s.cache.Store(ctx, sess.UserID(), items); err != nil {
		slog.Warn("cart cache store failed", "user_id", sess.UserID(), "error", err.Error())
	}
}

func (s *CartState) invalidate(ctx context.Context, sess *user.Session) {
	if err := s.cache.Invalidate(ctx, sess.UserID()); err != nil {
		slog.Warn("cart cache invalidate failed", "user_id", sess.UserID(), "error", err.Error())
	}
}

// keyedMutex serialises cart mutations per user within this process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
