package backend

import (
	"strings"
	"time"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/domain/product"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type rentalOptionPayload struct {
	Days  int             `json:"days"`
	Price decimal.Decimal `json:"price"`
}

type productPayload struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	OriginalPrice   decimal.Decimal       `json:"originalPrice"`
	DiscountedPrice decimal.Decimal       `json:"discountedPrice"`
	RentalOptions   []rentalOptionPayload `json:"rentalOptions"`
	Images          []string              `json:"images"`
}

func (p productPayload) toDomain(requestedID string) (*product.Product, error) {
	opts := make([]rental.RentalOption, 0, len(p.RentalOptions))
	for _, o := range p.RentalOptions {
		opt, err := rental.NewRentalOption(o.Days, o.Price)
		if err != nil {
			return nil, errs.Wrapf(err, "product %s rental option", requestedID)
		}
		opts = append(opts, opt)
	}

	id := p.ID
	if strings.TrimSpace(id) == "" {
		id = requestedID
	}
	return product.NewProduct(id, p.Title, p.Description, p.OriginalPrice, p.DiscountedPrice, opts, p.Images)
}

type lineItemPayload struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"imageUrl"`
	DurationDays int             `json:"durationDays"`
	StartDate    rental.Date     `json:"startDate"`
	EndDate      rental.Date     `json:"endDate"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
}

func (p lineItemPayload) toDomain() (cart.LineItem, error) {
	qty := p.Quantity
	if qty == 0 {
		qty = 1
	}
	end := p.EndDate
	if end.IsZero() && !p.StartDate.IsZero() {
		end = rental.EndDateFor(p.StartDate, p.DurationDays)
	}
	li := cart.LineItem{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Title:        p.Title,
		ImageURL:     p.ImageURL,
		DurationDays: p.DurationDays,
		StartDate:    p.StartDate,
		EndDate:      end,
		UnitPrice:    p.UnitPrice,
		Quantity:     qty,
	}
	if err := li.Validate(); err != nil {
		return cart.LineItem{}, errs.Wrapf(err, "line item %s", p.ID)
	}
	return li, nil
}

func lineItemsToDomain(payloads []lineItemPayload) ([]cart.LineItem, error) {
	items := make([]cart.LineItem, 0, len(payloads))
	for _, p := range payloads {
		li, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

type cartPayload struct {
	Items []lineItemPayload `json:"items"`
}

type addItemPayload struct {
	ProductID   string `json:"productId"`
	OptionIndex int    `json:"optionIndex"`
	StartDate   string `json:"startDate"`
}

type orderPayload struct {
	ID          string            `json:"id"`
	OrderID     string            `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	Status      string            `json:"status"`
	Items       []lineItemPayload `json:"items"`
	TotalDue    decimal.Decimal   `json:"totalDue"`
	PlacedAt    string            `json:"placedAt"`
}

func (p orderPayload) orderID() string {
	if strings.TrimSpace(p.ID) != "" {
		return strings.TrimSpace(p.ID)
	}
	return strings.TrimSpace(p.OrderID)
}

func (p orderPayload) toDomain() (*order.Order, error) {
	status, err := order.ParseStatus(p.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s", p.orderID())
	}
	items, err := lineItemsToDomain(p.Items)
	if err != nil {
		return nil, err
	}
	return order.Reconstruct(p.orderID(), p.OrderNumber, status, items, p.TotalDue, parseTime(p.PlacedAt))
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPayload struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (p tokenPayload) value() string {
	if p.Token != "" {
		return p.Token
	}
	return p.AccessToken
}

type profilePayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func parseTime(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05Z07:00"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}
