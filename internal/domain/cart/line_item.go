package cart

import (
	"errors"
	"strings"

	"toy-rental-storefront/internal/domain/rental"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyLineItemID   = errors.New("line item id is required")
	ErrInvalidQuantity   = errors.New("line item quantity must be positive")
	ErrNegativeUnitPrice = errors.New("line item unit price cannot be negative")
	ErrInvalidRentalSpan = errors.New("line item end date must equal start date plus duration minus one")
)

// LineItem is a persisted, price-snapshotted cart or order entry. UnitPrice is
// fixed when the item is created and is never looked up from the catalog again.
type LineItem struct {
	ID           string
	ProductID    string
	Title        string
	ImageURL     string
	DurationDays int
	StartDate    rental.Date
	EndDate      rental.Date
	UnitPrice    decimal.Decimal
	Quantity     int
}

// Validate checks the invariants the backend is expected to uphold.
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.ID) == "" {
		return ErrEmptyLineItemID
	}
	if li.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if li.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if li.DurationDays > 0 && !li.StartDate.IsZero() &&
		!rental.EndDateFor(li.StartDate, li.DurationDays).Equal(li.EndDate) {
		return ErrInvalidRentalSpan
	}
	return nil
}

// LineTotal is unitPrice × quantity, unrounded.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// SameConfiguration reports whether two lines rent the same product for the
// same dates. Such lines are still distinct reservations.
func (li LineItem) SameConfiguration(other LineItem) bool {
	return li.ProductID == other.ProductID &&
		li.DurationDays == other.DurationDays &&
		li.StartDate.Equal(other.StartDate)
}

// FromSelection fills the descriptive fields of a line item from a selection
// and product metadata. The id is assigned by the cart service.
func FromSelection(id string, sel rental.RentalSelection, title, imageURL string) LineItem {
	return LineItem{
		ID:           id,
		ProductID:    sel.ProductID,
		Title:        title,
		ImageURL:     imageURL,
		DurationDays: sel.DurationDays,
		StartDate:    sel.StartDate,
		EndDate:      sel.EndDate,
		UnitPrice:    sel.UnitPrice,
		Quantity:     1,
	}
}
