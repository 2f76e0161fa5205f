package product

import (
	"errors"
	"strings"

	"toy-rental-storefront/internal/domain/rental"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyID       = errors.New("product id is required")
	ErrEmptyTitle    = errors.New("product title is required")
	ErrNegativePrice = errors.New("product price cannot be negative")
)

// Product is read-only catalog data owned by the catalog service.
type Product struct {
	id              string
	title           string
	description     string
	originalPrice   decimal.Decimal
	discountedPrice decimal.Decimal
	options         rental.Options
	images          []string
}

func NewProduct(
	id, title, description string,
	originalPrice, discountedPrice decimal.Decimal,
	options rental.Options,
	images []string,
) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if originalPrice.IsNegative() || discountedPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	validated, err := rental.NewOptions(options...)
	if err != nil {
		return nil, err
	}

	imgs := make([]string, 0, len(images))
	for _, img := range images {
		if s := strings.TrimSpace(img); s != "" {
			imgs = append(imgs, s)
		}
	}

	return &Product{
		id:              id,
		title:           title,
		description:     description,
		originalPrice:   originalPrice,
		discountedPrice: discountedPrice,
		options:         validated,
		images:          imgs,
	}, nil
}

// PrimaryImage is what a line item snapshots as its thumbnail.
func (p *Product) PrimaryImage() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[0]
}

// HasDiscount reports whether the catalog shows a struck-through original price.
func (p *Product) HasDiscount() bool {
	return p.discountedPrice.IsPositive() && p.discountedPrice.LessThan(p.originalPrice)
}

func (p *Product) ID() string                       { return p.id }
func (p *Product) Title() string                    { return p.title }
func (p *Product) Description() string              { return p.description }
func (p *Product) OriginalPrice() decimal.Decimal   { return p.originalPrice }
func (p *Product) DiscountedPrice() decimal.Decimal { return p.discountedPrice }
func (p *Product) Options() rental.Options          { return p.options }
func (p *Product) Images() []string                 { return append([]string(nil), p.images...) }
