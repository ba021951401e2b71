package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	JWTSecret      string        `env:"JWT_SECRET,      required"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	SessionTTL     time.Duration `env:"SESSION_TTL,     default=24h"`
	ClinicTimezone string        `env:"CLINIC_TIMEZONE, default=UTC"`
	StoreDriver    string        `env:"STORE_DRIVER,    default=mongo"`

	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=medconnect"`
}

type PostgresConfig struct {
	URL      string `env:"DATABASE_URL, default=postgres://localhost:5432/medconnect?sslmode=disable"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=10"`
	MinConns int32  `env:"DB_MIN_CONNS, default=1"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB           int           `env:"REDIS_DB,       default=0"`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL, default=5m"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY, required"`
	Model  string `env:"GEMINI_MODEL,   default=gemini-1.5-flash"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if cfg.StoreDriver != StoreMongo && cfg.StoreDriver != StorePostgres {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StorePostgres, cfg.StoreDriver)
	}
	if _, err := time.LoadLocation(cfg.ClinicTimezone); err != nil {
		return nil, fmt.Errorf("CLINIC_TIMEZONE: %w", err)
	}
	return &cfg, nil
}

// Location returns the clinic timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
