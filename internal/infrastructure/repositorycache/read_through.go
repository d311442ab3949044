package repositorycache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/metrics"
	"insuredevents/internal/ports"
)

// readThrough serves key from cache or, on a miss, from load.
// A failed load is returned untouched and leaves the cache as it was.
// Cache backend failures degrade to a miss; they never fail the caller.
func readThrough[T any](
	ctx context.Context,
	cache ports.Cache,
	operation string,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "repositorycache"),
		slog.String("operation", operation),
		slog.String("cache_key", key),
	)

	if ports.CacheBypassed(ctx) {
		metrics.CacheLookupsTotal.WithLabelValues(operation, metrics.CacheBypass).Inc()
	} else if cached, ok := lookup[T](logCtx, cache, operation, key); ok {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	store(logCtx, cache, operation, key, value, ttl)
	return value, nil
}

func lookup[T any](ctx context.Context, cache ports.Cache, operation string, key string) (T, bool) {
	var zero T

	raw, found, err := cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(operation, metrics.CacheError).Inc()
		logging.Warn(ctx, "cache read failed, falling back to repository", slog.Any("err", errs.Loggable(err)))
		return zero, false
	}
	if !found {
		metrics.CacheLookupsTotal.WithLabelValues(operation, metrics.CacheMiss).Inc()
		logging.Debug(ctx, "cache miss")
		return zero, false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(operation, metrics.CacheError).Inc()
		logging.Warn(ctx, "cached value undecodable, falling back to repository", slog.Any("err", errs.Loggable(err)))
		return zero, false
	}

	metrics.CacheLookupsTotal.WithLabelValues(operation, metrics.CacheHit).Inc()
	logging.Debug(ctx, "cache hit")
	return value, true
}

func store[T any](ctx context.Context, cache ports.Cache, operation string, key string, value T, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err == nil {
		err = cache.Set(ctx, key, raw, ttl)
	}
	if err != nil {
		metrics.CacheStoreErrorsTotal.WithLabelValues(operation).Inc()
		logging.Warn(ctx, "cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}
