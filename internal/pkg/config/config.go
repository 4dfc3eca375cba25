package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=3002"`
	Env             string        `env:"ENV,              default=development"`
	JWTSecret       string        `env:"JWT_SECRET,       required"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	HashWorkers     int           `env:"HASH_WORKERS,     default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	HTTP  HTTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL,      default=30s"`
}

// HTTPConfig holds the browser-facing and abuse-control settings.
type HTTPConfig struct {
	CORSOrigins   []string `env:"CORS_ORIGINS,    default=http://localhost:5173,https://letsgrowesports.vercel.app,http://localhost:3000,https://admin-lge.vercel.app,https://lgeadmin.web.app,https://lgenew.vercel.app"`
	AuthRateLimit float64  `env:"AUTH_RATE_LIMIT, default=5"`
	AuthRateBurst int      `env:"AUTH_RATE_BURST, default=10"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// It panics when the environment is invalid, e.g. JWT_SECRET is unset.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.HashWorkers <= 0 {
		return nil, fmt.Errorf("HASH_WORKERS must be positive, got %d", cfg.HashWorkers)
	}
	return &cfg, nil
}
