package order

import (
	"errors"
	"strings"
	"time"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/pricing"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrderID = errors.New("order id is required")
	ErrNoItems      = errors.New("order must contain at least one item")
)

// Order holds its own copy of the line items it was created from. Status
// changes are decided by the order service; the helpers below only tell the
// UI which requests make sense to offer.
type Order struct {
	id          string
	orderNumber string
	status      Status
	items       []cart.LineItem
	totalDue    decimal.Decimal
	placedAt    time.Time
}

func Reconstruct(id, orderNumber string, status Status, items []cart.LineItem, totalDue decimal.Decimal, placedAt time.Time) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyOrderID
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	owned, err := copyItems(items)
	if err != nil {
		return nil, err
	}
	return &Order{
		id:          id,
		orderNumber: orderNumber,
		status:      status,
		items:       owned,
		totalDue:    totalDue,
		placedAt:    placedAt,
	}, nil
}

// FromCart snapshots a non-empty cart into a freshly placed order. Later
// mutations of the cart do not reach the order.
func FromCart(c *cart.Cart, id, orderNumber string, placedAt time.Time) (*Order, error) {
	if c.IsEmpty() {
		return nil, ErrNoItems
	}
	totals := pricing.ForCart(c)
	return Reconstruct(id, orderNumber, StatusPlaced, c.Items(), totals.GrandTotal, placedAt)
}

// WithStatus is the optimistic view shown while a cancel/confirm request is in
// flight; it is discarded once the service answers.
func (o *Order) WithStatus(s Status) *Order {
	cp := *o
	cp.items, _ = copyItems(o.items)
	cp.status = s
	return &cp
}

func (o *Order) CanRequestCancel() bool {
	return o.status == StatusPlaced || o.status == StatusConfirmed
}

func (o *Order) CanRequestConfirm() bool {
	return o.status == StatusPlaced
}

// Totals recomputes the subtotal through the shared pricing path. TotalDue
// stays the server's number and the discount is what separates the two.
func (o *Order) Totals() pricing.OrderTotals {
	t := pricing.Compute(o.items, nil)
	if o.totalDue.IsPositive() && o.totalDue.LessThan(t.Subtotal) {
		t.DiscountAmount = t.Subtotal.Sub(o.totalDue)
		t.GrandTotal = o.totalDue
	}
	return t
}

func (o *Order) ID() string                { return o.id }
func (o *Order) OrderNumber() string       { return o.orderNumber }
func (o *Order) Status() Status            { return o.status }
func (o *Order) TotalDue() decimal.Decimal { return o.totalDue }
func (o *Order) PlacedAt() time.Time       { return o.placedAt }

func (o *Order) Items() []cart.LineItem {
	out, _ := copyItems(o.items)
	return out
}

func copyItems(items []cart.LineItem) ([]cart.LineItem, error) {
	out := make([]cart.LineItem, 0, len(items))
	// Date and decimal.Decimal are immutable values, so a field-wise copy is
	// enough to detach the slice from the caller's.
	if err := copier.Copy(&out, &items); err != nil {
		return nil, err
	}
	return out, nil
}
