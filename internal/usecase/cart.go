package usecase

//go:generate mockgen -source=cart.go -destination=../../tests/mock/usecase/cart.go -package=usecasemock

import (
	"context"
	"errors"
	"log/slog"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/errs"
)

const (
	opAddItem    = "add cart item"
	opRemoveItem = "remove cart item"
)

type AddRentalInput struct {
	ProductID    string
	DurationDays int
	StartDate    string
}

type CartUseCase interface {
	Get(ctx context.Context, sess *user.Session) (*CartView, error)
	AddRental(ctx context.Context, sess *user.Session, in AddRentalInput) (*CartView, error)
	RemoveLineItem(ctx context.Context, sess *user.Session, itemID string) (*CartView, error)
}

type cartUseCaseImpl struct {
	catalog CatalogService
	carts   CartService
	state   *CartState
	builder *rental.SelectionBuilder
}

func NewCartUseCase(
	catalog CatalogService,
	carts CartService,
	state *CartState,
	builder *rental.SelectionBuilder,
) CartUseCase {
	return &cartUseCaseImpl{
		catalog: catalog,
		carts:   carts,
		state:   state,
		builder: builder,
	}
}

// Get always returns the server's cart and resets the local copy to it.
func (u *cartUseCaseImpl) Get(ctx context.Context, sess *user.Session) (*CartView, error) {
	c, err := u.state.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	return newCartView(c), nil
}

// AddRental validates the selection before any network call. Identical
// configurations added twice become two lines with distinct ids.
func (u *cartUseCaseImpl) AddRental(ctx context.Context, sess *user.Session, in AddRentalInput) (*CartView, error) {
	p, err := u.catalog.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, errs.Wrap(err, "load product")
	}

	sel, err := u.builder.Build(p.ID(), p.Options(), in.DurationDays, in.StartDate)
	if err != nil {
		return nil, err
	}

	unlock := u.state.locks.Lock(sess.UserID())
	defer unlock()

	added, err := u.carts.AddItem(ctx, sess.BackendToken(), AddItemRequest{
		ProductID:    sel.ProductID,
		OptionIndex:  sel.OptionIndex,
		DurationDays: sel.DurationDays,
		StartDate:    sel.StartDate,
	})
	if err != nil {
		return nil, errs.Wrap(err, opAddItem)
	}

	c, err := u.state.load(ctx, sess)
	if err != nil {
		// The next read must come from the server, which already holds the line.
		u.state.invalidate(ctx, sess)
		return nil, err
	}

	item := addedLine(added, sel, p.Title(), p.PrimaryImage())
	if err := c.Add(item); err != nil && !errors.Is(err, cart.ErrDuplicateLineItem) {
		// The service accepted the line but the local copy cannot hold it.
		slog.Warn("local cart rejected added line", "item_id", item.ID, "error", err.Error())
		if c, err = u.state.refresh(ctx, sess); err != nil {
			return nil, err
		}
		return newCartView(c), nil
	}

	u.state.store(ctx, sess, c.Items())
	return newCartView(c), nil
}

// addedLine keeps the server's price and dates. A bare id falls back to the
// validated selection.
func addedLine(added cart.LineItem, sel rental.RentalSelection, title, imageURL string) cart.LineItem {
	if added.ProductID == "" {
		return cart.FromSelection(added.ID, sel, title, imageURL)
	}
	if added.Title == "" {
		added.Title = title
	}
	if added.ImageURL == "" {
		added.ImageURL = imageURL
	}
	return added
}

// RemoveLineItem updates the local copy first. An id missing locally is looked
// up in a fresh copy of the server's cart before it is reported as not found.
// When the cart service rejects the removal the cart is re-fetched so the
// count is never left decremented, and the caller receives a SyncError
// carrying the reconciled view.
func (u *cartUseCaseImpl) RemoveLineItem(ctx context.Context, sess *user.Session, itemID string) (*CartView, error) {
	unlock := u.state.locks.Lock(sess.UserID())
	defer unlock()

	c, err := u.state.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	removal, err := c.Remove(itemID)
	if errors.Is(err, cart.ErrLineItemNotFound) {
		// The local copy may be stale; only the server's cart can say the line is gone.
		if c, err = u.state.refresh(ctx, sess); err != nil {
			return nil, err
		}
		removal, err = c.Remove(itemID)
	}
	if errors.Is(err, cart.ErrLineItemNotFound) {
		return nil, errs.NewNotFound("line item", itemID)
	}
	if err != nil {
		return nil, err
	}
	u.state.store(ctx, sess, c.Items())

	err = u.carts.RemoveItem(ctx, sess.BackendToken(), itemID)
	if err == nil || errs.IsNotFound(err) {
		return newCartView(c), nil
	}

	slog.Warn("cart item removal failed, reconciling",
		"user_id", sess.UserID(),
		"item_id", itemID,
		"error", err.Error())

	reconciled, fetchErr := u.state.refresh(ctx, sess)
	if fetchErr != nil {
		slog.Warn("cart refetch failed, restoring removed item",
			"user_id", sess.UserID(),
			"error", fetchErr.Error())
		if restoreErr := c.Restore(removal); restoreErr != nil {
			slog.Error("restore removed item failed", "item_id", itemID, "error", restoreErr.Error())
		}
		u.state.invalidate(ctx, sess)
		return nil, errs.NewSync(opRemoveItem, err, newCartView(c))
	}

	return nil, errs.NewSync(opRemoveItem, err, newCartView(reconciled))
}
