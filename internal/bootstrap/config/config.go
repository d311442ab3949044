package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverSQLite = "sqlite"
	CacheDriverRedis  = "redis"
)

type Config struct {
	// File is the config file that was read; empty when only defaults and env apply.
	File string `mapstructure:"-"`

	App    AppConfig    `mapstructure:"app"`
	API    APIConfig    `mapstructure:"api"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// APIConfig points at the upstream insured events API.
type APIConfig struct {
	BaseURL string            `mapstructure:"base_url"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

type CacheConfig struct {
	Driver    string `mapstructure:"driver"`
	SQLiteDSN string `mapstructure:"sqlite_dsn"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if err := errs.CheckContext(ctx); err != nil {
		return Config{}, err
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("IE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.File = v.ConfigFileUsed()

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("api_base_url", cfg.API.BaseURL),
		slog.String("cache_driver", cfg.Cache.Driver),
	)

	return cfg, nil
}

func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute url", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}

	c.Cache.Driver = strings.ToLower(strings.TrimSpace(c.Cache.Driver))
	switch c.Cache.Driver {
	case CacheDriverMemory:
	case CacheDriverSQLite:
		if strings.TrimSpace(c.Cache.SQLiteDSN) == "" {
			return errors.New("cache.sqlite_dsn is required for the sqlite cache")
		}
	case CacheDriverRedis:
		if strings.TrimSpace(c.Cache.RedisAddr) == "" {
			return errors.New("cache.redis_addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("unsupported cache driver %q", c.Cache.Driver)
	}
	return nil
}

// Watch reloads the config file on every change and hands each valid result to onChange.
// An invalid edit is logged and skipped; the previous config stays in effect.
// The watch lives as long as the process.
func Watch(ctx context.Context, configFile string, onChange func(Config)) error {
	if err := errs.CheckContext(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(configFile) == "" {
		return errors.New("config file is required to watch")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"), slog.String("path", configFile))

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return errs.Wrap(err, "read config")
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		cfg, err := Load(context.WithoutCancel(logCtx), configFile)
		if err != nil {
			logging.Warn(logCtx, "config reload rejected", slog.Any("err", errs.Loggable(err)))
			return
		}
		logging.Info(logCtx, "config reloaded", slog.String("op", event.Op.String()))
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "insured-events")
	v.SetDefault("app.env", "local")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.sqlite_dsn", ".cache/insured-events.sqlite")
	v.SetDefault("cache.redis_addr", "127.0.0.1:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("server.addr", ":8080")
}
