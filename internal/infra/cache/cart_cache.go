package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"toy-rental-storefront/internal/domain/cart"
	"toy-rental-storefront/internal/domain/rental"
	"toy-rental-storefront/internal/usecase"

	"github.com/jinzhu/copier"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type lineItemRecord struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Title        string          `json:"title"`
	ImageURL     string          `json:"image_url"`
	DurationDays int             `json:"duration_days"`
	StartDate    rental.Date     `json:"start_date"`
	EndDate      rental.Date     `json:"end_date"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

// CartCache is the local copy of each user's cart. An empty cart is stored
// as an empty list, which is different from a miss.
type CartCache struct {
	client *redis.Client
	keys   keyspace
	ttl    time.Duration
}

func NewCartCache(client *redis.Client, prefix string, ttl time.Duration) *CartCache {
	return &CartCache{
		client: client,
		keys:   keyspace{prefix: prefix, kind: "cart"},
		ttl:    ttl,
	}
}

var _ usecase.CartCache = (*CartCache)(nil)

func (c *CartCache) Load(ctx context.Context, userID string) ([]cart.LineItem, bool, error) {
	raw, err := c.client.Get(ctx, c.keys.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, wrapCacheErr("failed to load cart", err)
	}

	var recs []lineItemRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false, wrapCacheErr("failed to decode cart", err)
	}

	items := make([]cart.LineItem, 0, len(recs))
	if err := copier.Copy(&items, &recs); err != nil {
		return nil, false, wrapCacheErr("failed to map cached cart", err)
	}
	return items, true, nil
}

func (c *CartCache) Store(ctx context.Context, userID string, items []cart.LineItem) error {
	recs := make([]lineItemRecord, 0, len(items))
	if err := copier.Copy(&recs, &items); err != nil {
		return wrapCacheErr("failed to map cart", err)
	}

	payload, err := json.Marshal(recs)
	if err != nil {
		return wrapCacheErr("failed to encode cart", err)
	}
	if err := c.client.Set(ctx, c.keys.key(userID), payload, c.ttl).Err(); err != nil {
		return wrapCacheErr("failed to store cart", err)
	}
	return nil
}

func (c *CartCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.keys.key(userID)).Err(); err != nil {
		return wrapCacheErr("failed to invalidate cart", err)
	}
	return nil
}
