//go:build unit || e2e

package builder

import (
	"toy-rental-storefront/internal/domain/product"
	"toy-rental-storefront/internal/domain/rental"

	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID              string
	Title           string
	Description     string
	OriginalPrice   decimal.Decimal
	DiscountedPrice decimal.Decimal
	Options         []rental.RentalOption
	Images          []string
}

// NewProductBuilder returns a product whose catalog lists the 7-day plan
// before the 3-day one, so option indexes differ from duration order.
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:              "p1",
		Title:           "Wooden Train Set",
		Description:     "Forty-piece train set",
		OriginalPrice:   decimal.RequireFromString("1200"),
		DiscountedPrice: decimal.RequireFromString("900"),
		Options: []rental.RentalOption{
			{DurationDays: 7, Price: decimal.RequireFromString("600")},
			{DurationDays: 3, Price: decimal.RequireFromString("300")},
			{DurationDays: 15, Price: decimal.RequireFromString("1000")},
		},
		Images: []string{"https://img.example.com/p1.jpg"},
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

func (p *ProductBuilder) WithID(id string) *ProductBuilder {
	p.ID = id
	return p
}

func (p *ProductBuilder) WithOptions(opts ...rental.RentalOption) *ProductBuilder {
	p.Options = opts
	return p
}

func (p *ProductBuilder) BuildDomain() (*product.Product, error) {
	return product.NewProduct(p.ID, p.Title, p.Description, p.OriginalPrice, p.DiscountedPrice, p.Options, p.Images)
}

func (p *ProductBuilder) MustBuild() *product.Product {
	prod, err := p.BuildDomain()
	if err != nil {
		panic(err)
	}
	return prod
}
