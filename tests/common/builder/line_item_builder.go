//go:build unit || e2e

package builder

import (
	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/rental"

	"github.com/shopspring/decimal"
)

type LineItemBuilder struct {
	ID           string
	ProductID    string
	Title        string
	ImageURL     string
	DurationDays int
	StartDate    rental.Date
	UnitPrice    decimal.Decimal
	Quantity     int
}

func NewLineItemBuilder() *LineItemBuilder {
	return &LineItemBuilder{
		ID:           "li-1",
		ProductID:    "p1",
		Title:        "Wooden Train Set",
		ImageURL:     "https://img.example.com/p1.jpg",
		DurationDays: 7,
		StartDate:    rental.NewDate(2024, 3, 1),
		UnitPrice:    decimal.RequireFromString("500"),
		Quantity:     1,
	}
}

func (l *LineItemBuilder) With(mutate func(*LineItemBuilder)) *LineItemBuilder {
	mutate(l)
	return l
}

func (l *LineItemBuilder) WithID(id string) *LineItemBuilder {
	l.ID = id
	return l
}

func (l *LineItemBuilder) WithPrice(price string) *LineItemBuilder {
	l.UnitPrice = decimal.RequireFromString(price)
	return l
}

func (l *LineItemBuilder) WithQuantity(qty int) *LineItemBuilder {
	l.Quantity = qty
	return l
}

func (l *LineItemBuilder) BuildDomain() cart.LineItem {
	return cart.LineItem{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Title:        l.Title,
		ImageURL:     l.ImageURL,
		DurationDays: l.DurationDays,
		StartDate:    l.StartDate,
		EndDate:      rental.EndDateFor(l.StartDate, l.DurationDays),
		UnitPrice:    l.UnitPrice,
		Quantity:     l.Quantity,
	}
}

// LineItems builds one line per price, ids li-1, li-2, ...
func LineItems(prices ...string) []cart.LineItem {
	items := make([]cart.LineItem, 0, len(prices))
	for i, p := range prices {
		items = append(items, NewLineItemBuilder().
			WithID("li-"+itoa(i+1)).
			WithPrice(p).
			BuildDomain())
	}
	return items
}

func itoa(n int) string {
	return decimal.NewFromInt(int64(n)).String()
}
