//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"toy-rental-storefront/internal/domain/promotion"
	"toy-rental-storefront/internal/infra"
	"toy-rental-storefront/internal/infra/cache"
	"toy-rental-storefront/internal/pkg/config"
	"toy-rental-storefront/tests/common/builder"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testPrefix = "storefront-test"

type CacheTestSuite struct {
	suite.Suite
	ctx     context.Context
	mr      *miniredis.Miniredis
	client  *redis.Client
	cleanup func()
}

func (s *CacheTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mr = miniredis.RunT(s.T())

	client, cleanup, err := cache.Connect(s.ctx, config.RedisConfig{Addr: s.mr.Addr(), PoolSize: 2})
	s.Require().NoError(err)
	s.client = client
	s.cleanup = cleanup
}

func (s *CacheTestSuite) SetupSubTest() {
	s.mr.FlushAll()
}

func (s *CacheTestSuite) TearDownTest() {
	s.cleanup()
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) TestConnect() {
	s.Run("error: unreachable redis fails fast", func() {
		client, _, err := cache.Connect(s.ctx, config.RedisConfig{Addr: "127.0.0.1:1"})

		s.Nil(client)
		s.Error(err)
	})
}

func (s *CacheTestSuite) TestSessionStore() {
	store := cache.NewSessionStore(s.client, testPrefix)

	s.Run("success: round trip with ttl until expiry", func() {
		sess := builder.NewSessionBuilder().WithExpiry(time.Now(), time.Hour).BuildDomain()

		s.Require().NoError(store.Save(s.ctx, sess))
		got, err := store.Find(s.ctx, sess.ID())

		s.Require().NoError(err)
		s.Require().NotNil(got)
		s.Equal(sess.UserID(), got.UserID())
		s.Equal(sess.BackendToken(), got.BackendToken())
		s.Equal(sess.Role(), got.Role())
		s.True(sess.ExpiresAt().Equal(got.ExpiresAt()))

		key := testPrefix + ":session:" + sess.ID().String()
		s.True(s.mr.Exists(key))
		s.InDelta(time.Hour.Seconds(), s.mr.TTL(key).Seconds(), 5)
	})

	s.Run("success: expired session is not stored", func() {
		sess := builder.NewSessionBuilder().WithExpiry(time.Now().Add(-2*time.Hour), time.Hour).BuildDomain()

		s.Require().NoError(store.Save(s.ctx, sess))
		got, err := store.Find(s.ctx, sess.ID())

		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("success: unknown and deleted sessions are absent", func() {
		sess := builder.NewSessionBuilder().WithExpiry(time.Now(), time.Hour).BuildDomain()
		s.Require().NoError(store.Save(s.ctx, sess))

		s.Require().NoError(store.Delete(s.ctx, sess.ID()))

		got, err := store.Find(s.ctx, sess.ID())
		s.Require().NoError(err)
		s.Nil(got)
		got, err = store.Find(s.ctx, uuid.New())
		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("error: corrupted record", func() {
		id := uuid.New()
		s.Require().NoError(s.mr.Set(testPrefix+":session:"+id.String(), "{not json"))

		_, err := store.Find(s.ctx, id)

		s.True(infra.IsKind(err, infra.KindCacheFailure))
	})
}

func (s *CacheTestSuite) TestCheckoutPromotionStore() {
	ttl := 30 * time.Minute
	store := cache.NewCheckoutPromotionStore(s.client, testPrefix, ttl)
	toy10 := promotion.Promotion{Code: "TOY10", Rate: decimal.RequireFromString("0.10")}
	toy20 := promotion.Promotion{Code: "TOY20", Rate: decimal.RequireFromString("0.20")}

	s.Run("success: nothing applied", func() {
		got, err := store.Get(s.ctx, "user-1")

		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("success: put replaces the previous promotion", func() {
		s.Require().NoError(store.Put(s.ctx, "user-1", toy10))
		s.Require().NoError(store.Put(s.ctx, "user-1", toy20))

		got, err := store.Get(s.ctx, "user-1")

		s.Require().NoError(err)
		s.Equal("TOY20", got.Code)
		s.True(toy20.Rate.Equal(got.Rate))
	})

	s.Run("success: promotions are per user", func() {
		s.Require().NoError(store.Put(s.ctx, "user-1", toy20))

		got, err := store.Get(s.ctx, "user-2")

		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("success: cleared or idle promotions disappear", func() {
		s.Require().NoError(store.Put(s.ctx, "user-1", toy20))
		s.Require().NoError(store.Put(s.ctx, "user-2", toy10))

		s.Require().NoError(store.Clear(s.ctx, "user-1"))
		s.mr.FastForward(ttl + time.Second)

		got, err := store.Get(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Nil(got)
		got, err = store.Get(s.ctx, "user-2")
		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("error: stored rate out of range", func() {
		s.Require().NoError(s.mr.Set(testPrefix+":checkout_promotion:user-1", `{"code":"BAD","rate":"1.5"}`))

		_, err := store.Get(s.ctx, "user-1")

		s.True(infra.IsKind(err, infra.KindCacheFailure))
	})
}

func (s *CacheTestSuite) TestCartCache() {
	store := cache.NewCartCache(s.client, testPrefix, time.Hour)

	s.Run("success: miss differs from an empty cart", func() {
		_, ok, err := store.Load(s.ctx, "user-1")
		s.Require().NoError(err)
		s.False(ok)

		s.Require().NoError(store.Store(s.ctx, "user-1", nil))

		items, ok, err := store.Load(s.ctx, "user-1")
		s.Require().NoError(err)
		s.True(ok)
		s.Empty(items)
	})

	s.Run("success: round trip keeps prices and dates", func() {
		items := builder.LineItems("500", "299.99")

		s.Require().NoError(store.Store(s.ctx, "user-1", items))
		got, ok, err := store.Load(s.ctx, "user-1")

		s.Require().NoError(err)
		s.True(ok)
		s.Require().Len(got, 2)
		for i := range items {
			s.Equal(items[i].ID, got[i].ID)
			s.Equal(items[i].ProductID, got[i].ProductID)
			s.Equal(items[i].Title, got[i].Title)
			s.Equal(items[i].ImageURL, got[i].ImageURL)
			s.Equal(items[i].DurationDays, got[i].DurationDays)
			s.True(items[i].UnitPrice.Equal(got[i].UnitPrice))
			s.Equal(items[i].StartDate, got[i].StartDate)
			s.Equal(items[i].EndDate, got[i].EndDate)
			s.Equal(items[i].Quantity, got[i].Quantity)
		}
	})

	s.Run("success: stored record uses the cache field names", func() {
		s.Require().NoError(store.Store(s.ctx, "user-1", builder.LineItems("299.99")))

		raw, err := s.mr.Get(testPrefix + ":cart:user-1")

		s.Require().NoError(err)
		s.Contains(raw, `"product_id":"p1"`)
		s.Contains(raw, `"unit_price":"299.99"`)
		s.Contains(raw, `"start_date":"2024-03-01"`)
		s.Contains(raw, `"end_date":"2024-03-07"`)
	})

	s.Run("success: invalidate drops the copy", func() {
		s.Require().NoError(store.Store(s.ctx, "user-1", builder.LineItems("500")))

		s.Require().NoError(store.Invalidate(s.ctx, "user-1"))

		_, ok, err := store.Load(s.ctx, "user-1")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("error: corrupted copy", func() {
		s.Require().NoError(s.mr.Set(testPrefix+":cart:user-1", "[{"))

		_, _, err := store.Load(s.ctx, "user-1")

		s.True(infra.IsKind(err, infra.KindCacheFailure))
	})
}
