package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

// RedisCache shares cached responses between processes. Expiry is delegated to Redis key TTLs.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.Cache = (*RedisCache)(nil)

// NewRedisCache namespaces every key with prefix so several modules can share one Redis database.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) key(key string) (string, error) {
	if key == "" {
		return "", errors.New("key is required")
	}
	return c.prefix + key, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return nil, false, err
	}
	fullKey, err := c.key(key)
	if err != nil {
		return nil, false, err
	}

	value, err := c.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "redis get")
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}
	fullKey, err := c.key(key)
	if err != nil {
		return err
	}

	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, fullKey, value, ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set")
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}
	fullKey, err := c.key(key)
	if err != nil {
		return err
	}

	if err := c.client.Del(ctx, fullKey).Err(); err != nil {
		return errs.Wrap(err, "redis del")
	}
	return nil
}
