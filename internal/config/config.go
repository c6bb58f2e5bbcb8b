package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Broker   BrokerConfig
	Identity IdentityConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type StorageConfig struct {
	// Backend selects where collections are mirrored: file, redis, or memory.
	Backend string `env:"STORAGE_BACKEND" envDefault:"file"`
	Dir     string `env:"STORAGE_DIR" envDefault:"./data"`
}

// RedisConfig is shared by the redis storage backend and the catalog cache.
// An empty Addr disables the catalog cache; the redis storage backend
// requires it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CatalogConfig struct {
	BaseURL  string        `env:"CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com"`
	Timeout  time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"60s"`
}

// BrokerConfig configures the optional fulfillment queue. An empty URL
// disables publishing and the worker entirely.
type BrokerConfig struct {
	URL string `env:"AMQP_URL" envDefault:""`
}

type IdentityConfig struct {
	JWTSecret string `env:"IDENTITY_JWT_SECRET" envDefault:"super-secret-key"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	switch cfg.Storage.Backend {
	case "file", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == "redis" && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required with the redis storage backend")
	}
	return cfg, nil
}
