package usecase

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/ports.go -package=usecasemock

import (
	"context"
	"time"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/order"
	"toy-rental-storefront/internal/domain/product"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/domain/user"

	"github.com/google/uuid"
)

// Backend ports. Every method takes the caller's context; implementations
// bound each call with their own timeout.

type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*product.Product, error)
}

type AddItemRequest struct {
	ProductID    string
	OptionIndex  int
	DurationDays int
	StartDate    rental.Date
}

type CartService interface {
	GetCart(ctx context.Context, token string) ([]cart.LineItem, error)
	// AddItem returns the line as the backend stored it. When the backend
	// answers with only an id, the returned line carries just that ID.
	AddItem(ctx context.Context, token string, req AddItemRequest) (cart.LineItem, error)
	RemoveItem(ctx context.Context, token, itemID string) error
}

type PlacedOrder struct {
	ID          string
	OrderNumber string
	Status      order.Status
	PlacedAt    time.Time
}

type OrderService interface {
	CreateOrder(ctx context.Context, token, idempotencyKey string) (*PlacedOrder, error)
	ListOrders(ctx context.Context, token string) ([]*order.Order, error)
	GetOrder(ctx context.Context, token, id string) (*order.Order, error)
	CancelOrder(ctx context.Context, token, id string) (*order.Order, error)
}

type BackendProfile struct {
	UserID      string
	Email       string
	DisplayName string
	Role        string
}

type AuthService interface {
	// Login returns the backend bearer token for valid credentials.
	Login(ctx context.Context, creds user.Credentials) (string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*BackendProfile, error)
}

// Storage ports.

// SessionStore.Find returns (nil, nil) for an unknown or expired id.
type SessionStore interface {
	Save(ctx context.Context, s *user.Session) error
	Find(ctx context.Context, id uuid.UUID) (*user.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CheckoutPromotionStore holds at most one applied promotion per user.
// Get returns nil when nothing is applied.
type CheckoutPromotionStore interface {
	Get(ctx context.Context, userID string) (*promotion.Promotion, error)
	Put(ctx context.Context, userID string, p promotion.Promotion) error
	Clear(ctx context.Context, userID string) error
}

// CartCache is the local copy of the user's cart that optimistic updates act on.
type CartCache interface {
	Load(ctx context.Context, userID string) ([]cart.LineItem, bool, error)
	Store(ctx context.Context, userID string, items []cart.LineItem) error
	Invalidate(ctx context.Context, userID string) error
}
