package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"toy-rental-storefront/internal/infra"
	"toy-rental-storefront/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

func WithPoolSize(poolSize int) Option {
	return func(o *redis.Options) {
		if poolSize > 0 {
			o.PoolSize = poolSize
		}
	}
}

// Connect opens a client and pings it so a wrong address fails at startup.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	opts := &redis.Options{Addr: cfg.Addr}
	for _, option := range []Option{WithPassword(cfg.Password), WithDB(cfg.DB), WithPoolSize(cfg.PoolSize)} {
		option(opts)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// keyspace namespaces every key under the configured prefix.
type keyspace struct {
	prefix string
	kind   string
}

func (k keyspace) key(id string) string {
	var builder strings.Builder
	builder.Grow(len(k.prefix) + len(k.kind) + len(id) + 2)
	builder.WriteString(k.prefix)
	builder.WriteString(":")
	builder.WriteString(k.kind)
	builder.WriteString(":")
	builder.WriteString(id)
	return builder.String()
}

func wrapCacheErr(msg string, err error) error {
	return infra.WrapRepoErr(msg, err, infra.KindCacheFailure)
}
