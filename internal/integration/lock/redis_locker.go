// Package lock implements adapter.Locker with Redis and with an in-process fallback.
package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

const keyPrefix = "ledger:lock:"

// releaseScript deletes the key only if it still holds the owner's token,
// so an expired lock taken over by someone else is never released.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker implements adapter.Locker on top of Redis SET NX.
type redisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a locker shared by every API replica using the same Redis.
func NewRedisLocker(client *redis.Client) adapter.Locker {
	return &redisLocker{
		client: client,
	}
}

// Acquire takes the lock for key without waiting.
func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, adapter.ErrLockHeld
	}

	return func() {
		// The caller's context may already be cancelled when releasing.
		if err := releaseScript.Run(context.Background(), l.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("failed to release lock", "key", key, "error", err)
		}
	}, nil
}
