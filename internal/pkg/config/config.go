package config

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Crypto schemes accepted in CRYPTO_SCHEME.
const (
	SchemeSealed = "sealed"
	SchemeLegacy = "legacy"
)

const (
	cryptoKeyLen = 32
	cryptoIVLen  = 16
)

// Config is built once at startup and shared read-only by every component.
type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`

	Crypto CryptoConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type CryptoConfig struct {
	Scheme string `env:"CRYPTO_SCHEME, default=sealed"`
	KeyHex string `env:"CRYPTO_KEY"`
	IVHex  string `env:"CRYPTO_IV"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=panaderia"`
}

// RedisConfig with an empty Addr disables the catalog cache. Timeout bounds
// every cache round trip.
type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=500ms"`
}

// Load reads configuration from the process environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks every value that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.Crypto.Scheme {
	case SchemeSealed, SchemeLegacy:
	default:
		return fmt.Errorf("config: CRYPTO_SCHEME must be %q or %q, got %q", SchemeSealed, SchemeLegacy, c.Crypto.Scheme)
	}
	if _, err := c.Crypto.Key(); err != nil {
		return err
	}
	if c.Crypto.Scheme == SchemeLegacy {
		if _, err := c.Crypto.IV(); err != nil {
			return err
		}
	}
	return nil
}

// Key decodes CRYPTO_KEY. It must be exactly 32 bytes of hex.
func (c CryptoConfig) Key() ([]byte, error) {
	return decodeHex("CRYPTO_KEY", c.KeyHex, cryptoKeyLen)
}

// IV decodes CRYPTO_IV. It must be exactly 16 bytes of hex.
func (c CryptoConfig) IV() ([]byte, error) {
	return decodeHex("CRYPTO_IV", c.IVHex, cryptoIVLen)
}

func decodeHex(name, value string, size int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("config: %s is required", name)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("config: %s is not valid hex: %w", name, err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("config: %s must decode to %d bytes, got %d", name, size, len(b))
	}
	return b, nil
}
