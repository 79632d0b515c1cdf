package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	// DatabaseURL is required for the postgres store.
	DatabaseURL string `env:"DATABASE_URL"`
	Port        string `env:"PORT" envDefault:"8080"`
	Store       string `env:"STORE" envDefault:"postgres"`

	// JWTSecret signs and verifies caller tokens (HS256).
	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER"`

	// RedisURL enables rate limiting when set.
	RedisURL   string        `env:"REDIS_URL"`
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"120"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`

	// FCMProjectID enables push delivery through Firebase. Without it
	// notifications are only logged.
	FCMProjectID string `env:"FCM_PROJECT_ID"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	IdentityCacheSize int           `env:"IDENTITY_CACHE_SIZE" envDefault:"1024"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env if present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse(nil)
}

// Parse builds the config from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL required for the postgres store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE %q", c.Store))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET required"))
	}
	if c.RedisURL != "" && (c.RateLimit <= 0 || c.RateWindow <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT and RATE_WINDOW must be positive"))
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat))
	}
	if c.IdentityCacheSize <= 0 {
		errs = append(errs, errors.New("IDENTITY_CACHE_SIZE must be positive"))
	}
	return errors.Join(errs...)
}
