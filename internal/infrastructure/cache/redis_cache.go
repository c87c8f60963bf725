package cache

import (
	"context"
	"errors"
	"time"

	"firesec_estimator/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisCache backs the content cache with Redis. Contract: an unreachable
// backend degrades to always-absent reads and no-op writes, logged at
// warn, never an error to the caller.
type RedisCache struct {
	client *redis.Client
	log    zerolog.Logger
}

var _ interfaces.IContentCache = (*RedisCache)(nil)

// NewRedisCache connects using a redis:// URL.
func NewRedisCache(url string, log zerolog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts), log: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoopCache satisfies the cache contract with no backing store. Used when
// no cache endpoint is configured.
type NoopCache struct{}

var _ interfaces.IContentCache = (*NoopCache)(nil)

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (*NoopCache) Get(context.Context, string) (string, bool) { return "", false }

func (*NoopCache) Set(context.Context, string, string, time.Duration) {}
