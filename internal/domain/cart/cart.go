package cart

import (
	"errors"

	"toy-rental-storefront/internal/domain/promotion"

	"github.com/shopspring/decimal"
)

var (
	ErrLineItemNotFound  = errors.New("line item not found in cart")
	ErrDuplicateLineItem = errors.New("line item id already in cart")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Cart is the local cached copy of a user's server-side cart. It never assumes
// exclusive ownership: Replace overwrites it with authoritative state.
type Cart struct {
	items     []LineItem
	promotion *promotion.Promotion
}

func New(items ...LineItem) (*Cart, error) {
	c := &Cart{}
	if err := c.Replace(items); err != nil {
		return nil, err
	}
	return c, nil
}

// Add appends item. Identical configurations are not merged: each add is a
// separate unit reservation on the backend.
func (c *Cart) Add(item LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if c.indexOf(item.ID) >= 0 {
		return ErrDuplicateLineItem
	}
	c.items = append(c.items, item)
	return nil
}

// Removal remembers where an item sat so an optimistic removal can be undone.
type Removal struct {
	Item     LineItem
	Position int
}

func (c *Cart) Remove(id string) (Removal, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Removal{}, ErrLineItemNotFound
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	return Removal{Item: removed, Position: idx}, nil
}

// Restore reinserts a removed item at its old position, or at the end when the
// cart has shrunk since.
func (c *Cart) Restore(r Removal) error {
	if c.indexOf(r.Item.ID) >= 0 {
		return ErrDuplicateLineItem
	}
	pos := r.Position
	if pos < 0 || pos > len(c.items) {
		pos = len(c.items)
	}
	c.items = append(c.items, LineItem{})
	copy(c.items[pos+1:], c.items[pos:])
	c.items[pos] = r.Item
	return nil
}

// Replace swaps in the server's view of the cart. The applied promotion is kept.
func (c *Cart) Replace(items []LineItem) error {
	next := make([]LineItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, dup := seen[it.ID]; dup {
			return ErrDuplicateLineItem
		}
		seen[it.ID] = struct{}{}
		next = append(next, it)
	}
	c.items = next
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
	c.promotion = nil
}

func (c *Cart) Contains(id string) bool {
	return c.indexOf(id) >= 0
}

// Items returns a copy in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int      { return len(c.items) }
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Subtotal is Σ unitPrice × quantity in exact decimal; it is never rounded here.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// ApplyPromotion replaces whatever promotion was applied before. Promotions
// never stack.
func (c *Cart) ApplyPromotion(p promotion.Promotion) {
	c.promotion = &p
}

func (c *Cart) ClearPromotion() {
	c.promotion = nil
}

func (c *Cart) Promotion() *promotion.Promotion {
	if c.promotion == nil {
		return nil
	}
	p := *c.promotion
	return &p
}

func (c *Cart) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
