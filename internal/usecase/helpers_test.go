//go:build unit

package usecase_test

import (
	"context"
	"sync"
	"time"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/pkg/clock"
	"toy-rental-storefront/internal/usecase"
)

// Storefront "now" for every use case test: 2024-02-20 09:00 UTC.
var testNow = time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)

func newTestBuilder() (*rental.SelectionBuilder, *clock.MockClock) {
	clk := clock.NewMockClock(testNow)
	return rental.NewSelectionBuilder(clk, time.UTC), clk
}

// memCartCache is an in-memory CartCache.
type memCartCache struct {
	mu          sync.Mutex
	items       map[string][]cart.LineItem
	invalidated map[string]int
	loadErr     error
}

func newMemCartCache() *memCartCache {
	return &memCartCache{
		items:       make(map[string][]cart.LineItem),
		invalidated: make(map[string]int),
	}
}

func (m *memCartCache) Load(_ context.Context, userID string) ([]cart.LineItem, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	items, ok := m.items[userID]
	return append([]cart.LineItem(nil), items...), ok, nil
}

func (m *memCartCache) Store(_ context.Context, userID string, items []cart.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = append([]cart.LineItem(nil), items...)
	return nil
}

func (m *memCartCache) Invalidate(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, userID)
	m.invalidated[userID]++
	return nil
}

func (m *memCartCache) count(userID string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.items[userID]
	return len(items), ok
}

// memPromoStore is an in-memory CheckoutPromotionStore.
type memPromoStore struct {
	mu     sync.Mutex
	promos map[string]promotion.Promotion
}

func newMemPromoStore() *memPromoStore {
	return &memPromoStore{promos: make(map[string]promotion.Promotion)}
}

func (m *memPromoStore) Get(_ context.Context, userID string) (*promotion.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.promos[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPromoStore) Put(_ context.Context, userID string, p promotion.Promotion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promos[userID] = p
	return nil
}

func (m *memPromoStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.promos, userID)
	return nil
}

var (
	_ usecase.CartCache              = (*memCartCache)(nil)
	_ usecase.CheckoutPromotionStore = (*memPromoStore)(nil)
)

func itemIDs(items []cart.LineItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
