package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testIV  = "a0a1a2a3a4a5a6a7a8a9aaabacadaeaf"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadFrom(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET": "s3cret",
		"CRYPTO_KEY": testKey,
	})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, SchemeSealed, cfg.Crypto.Scheme)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "panaderia", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.Timeout)

	key, err := cfg.Crypto.Key()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestLoad_LegacyRequiresIV(t *testing.T) {
	_, err := load(t, map[string]string{
		"JWT_SECRET":    "s3cret",
		"CRYPTO_KEY":    testKey,
		"CRYPTO_SCHEME": SchemeLegacy,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRYPTO_IV is required")

	cfg, err := load(t, map[string]string{
		"JWT_SECRET":    "s3cret",
		"CRYPTO_KEY":    testKey,
		"CRYPTO_IV":     testIV,
		"CRYPTO_SCHEME": SchemeLegacy,
	})
	require.NoError(t, err)
	iv, err := cfg.Crypto.IV()
	require.NoError(t, err)
	assert.Len(t, iv, 16)
}

func TestLoad_FailsFast(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing secret",
			env:  map[string]string{"CRYPTO_KEY": testKey},
			want: "JWT_SECRET is required",
		},
		{
			name: "missing key",
			env:  map[string]string{"JWT_SECRET": "x"},
			want: "CRYPTO_KEY is required",
		},
		{
			name: "malformed hex",
			env:  map[string]string{"JWT_SECRET": "x", "CRYPTO_KEY": "zz" + testKey[2:]},
			want: "not valid hex",
		},
		{
			name: "short key is not truncated or padded",
			env:  map[string]string{"JWT_SECRET": "x", "CRYPTO_KEY": testKey[:62]},
			want: "must decode to 32 bytes",
		},
		{
			name: "short iv",
			env: map[string]string{
				"JWT_SECRET": "x", "CRYPTO_KEY": testKey,
				"CRYPTO_SCHEME": SchemeLegacy, "CRYPTO_IV": strings.Repeat("ab", 8),
			},
			want: "must decode to 16 bytes",
		},
		{
			name: "unknown scheme",
			env:  map[string]string{"JWT_SECRET": "x", "CRYPTO_KEY": testKey, "CRYPTO_SCHEME": "rot13"},
			want: "CRYPTO_SCHEME",
		},
		{
			name: "zero ttl",
			env:  map[string]string{"JWT_SECRET": "x", "CRYPTO_KEY": testKey, "TOKEN_TTL": "0s"},
			want: "TOKEN_TTL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
