// Package lock implements adapter.Locker with Redis and with an in-process fallback.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// localEntry tracks a held key.
type localEntry struct {
	owner     uint64
	expiresAt time.Time
}

// localLocker implements adapter.Locker for a single process.
type localLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	next    uint64
}

// NewLocalLocker creates a locker that only excludes callers in this process.
// It is used when Redis is not configured.
func NewLocalLocker() adapter.Locker {
	return &localLocker{
		entries: make(map[string]*localEntry),
	}
}

// Acquire takes the lock for key without waiting. Expired entries are taken over.
func (l *localLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if entry, exists := l.entries[key]; exists && now.Before(entry.expiresAt) {
		return nil, adapter.ErrLockHeld
	}

	l.next++
	owner := l.next
	l.entries[key] = &localEntry{
		owner:     owner,
		expiresAt: now.Add(ttl),
	}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		if entry, exists := l.entries[key]; exists && entry.owner == owner {
			delete(l.entries, key)
		}
	}, nil
}
