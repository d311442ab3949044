package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"insuredevents/internal/bootstrap/config"
	"insuredevents/internal/bootstrap/database"
	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
	cacheinfra "insuredevents/internal/infrastructure/cache"
	"insuredevents/internal/infrastructure/httpapi"
	"insuredevents/internal/infrastructure/repositorycache"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

const redisKeyPrefix = "insured-events:"

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideCache),
	fx.Provide(provideHTTPClient),
	fx.Provide(ComposeFacade),
	fx.Provide(provideApp),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

// provideCache builds the one cache backend shared by every caching decorator.
func provideCache(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (ports.Cache, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"), slog.String("cache_driver", cfg.Cache.Driver))

	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		logging.Info(logCtx, "using in-memory cache")
		return cacheinfra.NewMemoryCache(), nil
	case config.CacheDriverSQLite:
		db, err := database.OpenSQLite(logCtx, cfg.Cache.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		sqliteCache := cacheinfra.NewSQLiteCache(db)
		lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				return sqliteCache.Migrate(startCtx)
			},
			OnStop: func(stopCtx context.Context) error {
				return database.Close(logging.WithAttrs(stopCtx, slog.String("component", "bootstrap.fx")), db)
			},
		})
		return sqliteCache, nil
	case config.CacheDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				if err := client.Ping(startCtx).Err(); err != nil {
					return errs.Wrapf(err, "ping redis %s", cfg.Cache.RedisAddr)
				}
				logging.Info(logCtx, "redis cache connected", slog.String("addr", cfg.Cache.RedisAddr))
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		return cacheinfra.NewRedisCache(client, redisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}

func provideHTTPClient(cfg config.Config) (*httpapi.Client, error) {
	return httpapi.NewClient(httpapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Headers: cfg.API.Headers,
	})
}

// ComposeFacade wires the upstream adapters, the caching decorators, the service and the facade.
// The decorators share cache, so every cached operation lands in the same backend.
func ComposeFacade(client *httpapi.Client, cache ports.Cache) *insuredevents.Facade {
	events := repositorycache.NewEventsRepository(httpapi.NewEventsRepository(client), cache)
	dicts := repositorycache.NewDictionariesRepository(httpapi.NewDictionariesRepository(client), cache)
	return insuredevents.NewFacade(insuredevents.NewService(events, dicts))
}
