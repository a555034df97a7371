package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/panaderia/backend/internal/pkg/config"
)

const (
	defaultOpTimeout = 500 * time.Millisecond
	poolSize         = 10
)

// options tunes the client for the list cache: a slow cache must fail fast
// so reads fall through to Mongo instead of queuing behind Redis.
func options(cfg config.RedisConfig) *redis.Options {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  2 * timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolSize:     poolSize,
		PoolTimeout:  timeout,
		MaxRetries:   1,
	}
}

// Connect opens the catalog cache client and pings it once.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts := options(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
