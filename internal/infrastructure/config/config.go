package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Rate  RateLimitConfig
	Audit AuditConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	// AccessSecret and RefreshSecret sign the two token kinds. They are
	// deliberately separate: leaking one never allows minting the other.
	AccessSecret  string        `env:"JWT_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
	BcryptCost    int           `env:"BCRYPT_COST,     default=12"`
}

type RateLimitConfig struct {
	// APILimit/APIWindow throttle every /api route per client address;
	// LoginLimit/LoginWindow apply a stricter quota to login on top.
	APILimit    int           `env:"API_RATE_LIMIT,    default=100"`
	APIWindow   time.Duration `env:"API_RATE_WINDOW,   default=1m"`
	LoginLimit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=company_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the secret rules. Development fills in throwaway
// secrets so the service runs with no env at all; every other environment
// must provide both, and they must differ.
func (c *Config) validate() error {
	if c.Env == "development" {
		if c.Auth.AccessSecret == "" {
			c.Auth.AccessSecret = "dev-access-secret"
		}
		if c.Auth.RefreshSecret == "" {
			c.Auth.RefreshSecret = "dev-refresh-secret"
		}
	}
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("config: JWT_SECRET and JWT_REFRESH_SECRET are required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("config: JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}
