// Package cache provides the Redis connection used for distributed locks.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	client *redis.Client
}

// NewRedisConnection parses cfg.URL, applies the password and DB overrides and pings the server.
func NewRedisConnection(cfg *config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("redis connection established", "addr", opts.Addr, "db", opts.DB)
	return &Redis{client: client}, nil
}

// Client returns the underlying client.
func (r *Redis) Client() *redis.Client {
	return r.client
}

// HealthCheck pings Redis.
func (r *Redis) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		slog.Error("redis health check failed", "error", err)
		return false
	}
	return true
}

// Close closes the connection.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}
	slog.Info("redis connection closed")
	return nil
}
