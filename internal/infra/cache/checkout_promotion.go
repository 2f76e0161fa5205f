package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type promotionRecord struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
}

// CheckoutPromotionStore is the checkout session: one applied promotion per
// user, dropped after ttl of inactivity or when an order is placed.
type CheckoutPromotionStore struct {
	client *redis.Client
	keys   keyspace
	ttl    time.Duration
}

func NewCheckoutPromotionStore(client *redis.Client, prefix string, ttl time.Duration) *CheckoutPromotionStore {
	return &CheckoutPromotionStore{
		client: client,
		keys:   keyspace{prefix: prefix, kind: "checkout_promotion"},
		ttl:    ttl,
	}
}

var _ usecase.CheckoutPromotionStore = (*CheckoutPromotionStore)(nil)

func (s *CheckoutPromotionStore) Get(ctx context.Context, userID string) (*promotion.Promotion, error) {
	raw, err := s.client.Get(ctx, s.keys.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, wrapCacheErr("failed to load checkout promotion", err)
	}

	var rec promotionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, wrapCacheErr("failed to decode checkout promotion", err)
	}
	p, err := promotion.NewPromotion(rec.Code, rec.Rate)
	if err != nil {
		return nil, wrapCacheErr("stored checkout promotion is invalid", err)
	}
	return &p, nil
}

// Put overwrites; promotions never stack.
func (s *CheckoutPromotionStore) Put(ctx context.Context, userID string, p promotion.Promotion) error {
	payload, err := json.Marshal(promotionRecord{Code: p.Code, Rate: p.Rate})
	if err != nil {
		return wrapCacheErr("failed to encode checkout promotion", err)
	}
	if err := s.client.Set(ctx, s.keys.key(userID), payload, s.ttl).Err(); err != nil {
		return wrapCacheErr("failed to save checkout promotion", err)
	}
	return nil
}

func (s *CheckoutPromotionStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.keys.key(userID)).Err(); err != nil {
		return wrapCacheErr("failed to clear checkout promotion", err)
	}
	return nil
}
