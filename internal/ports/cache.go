package ports

import (
	"context"
	"time"
)

// Cache defines a key-value capability with per-entry expiry.
// A ttl <= 0 stores the value without expiry. Expired entries read as not found.
// Adapters may be backed by process memory, SQLite or Redis.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheBypassKey struct{}

// WithCacheBypass marks reads made with ctx to skip cached values. Results are still stored.
func WithCacheBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheBypassKey{}, true)
}

func CacheBypassed(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	bypass, _ := ctx.Value(cacheBypassKey{}).(bool)
	return bypass
}
