package usecase

//go:generate mockgen -source=product.go -destination=../../tests/mock/usecase/product.go -package=usecasemock

import (
	"context"
	"log/slog"

	"toy-rental-storefront/internal/domain/product"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// ProductDetail is what the product page needs in one request. CartItemCount
// is zero for anonymous visitors.
type ProductDetail struct {
	Product       *product.Product
	Options       rental.Options
	Today         rental.Date
	CartItemCount int
}

type ProductUseCase interface {
	GetDetail(ctx context.Context, id string, sess *user.Session) (*ProductDetail, error)
	Quote(ctx context.Context, id string, durationDays int, startDate string) (*rental.RentalSelection, error)
}

type productUseCaseImpl struct {
	catalog CatalogService
	state   *CartState
	builder *rental.SelectionBuilder
}

func NewProductUseCase(catalog CatalogService, state *CartState, builder *rental.SelectionBuilder) ProductUseCase {
	return &productUseCaseImpl{
		catalog: catalog,
		state:   state,
		builder: builder,
	}
}

func (u *productUseCaseImpl) GetDetail(ctx context.Context, id string, sess *user.Session) (*ProductDetail, error) {
	var (
		p     *product.Product
		count int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = u.catalog.GetProduct(gctx, id)
		if err != nil {
			return errs.Wrap(err, "load product")
		}
		return nil
	})
	if sess != nil {
		g.Go(func() error {
			c, err := u.state.load(gctx, sess)
			if err != nil {
				// The badge is cosmetic; the page still renders without it.
				slog.Warn("cart badge unavailable", "user_id", sess.UserID(), "error", err.Error())
				return nil
			}
			count = c.ItemCount()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:       p,
		Options:       p.Options().SortedByDuration(),
		Today:         u.builder.Today(),
		CartItemCount: count,
	}, nil
}

// Quote previews the end date and price of a selection without touching the cart.
func (u *productUseCaseImpl) Quote(ctx context.Context, id string, durationDays int, startDate string) (*rental.RentalSelection, error) {
	p, err := u.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "load product")
	}

	sel, err := u.builder.Build(p.ID(), p.Options(), durationDays, startDate)
	if err != nil {
		return nil, err
	}
	return &sel, nil
}
