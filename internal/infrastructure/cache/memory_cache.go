package cache

import (
	"bytes"
	"context"
	"errors"
	"time"

	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
)

// MemoryCache adapts the TTL map to ports.Cache. Values are copied on the way in and out.
type MemoryCache struct {
	store *TTL[[]byte]
}

var _ ports.Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(time.Now)
}

func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{store: NewTTLWithClock[[]byte](now)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return nil, false, err
	}

	if key == "" {
		return nil, false, errors.New("key is required")
	}

	value, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(value), true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key is required")
	}

	c.store.Set(key, bytes.Clone(value), ttl)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}

	if key == "" {
		return errors.New("key is required")
	}

	c.store.Delete(key)
	return nil
}
