// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned by Locker.Acquire when the key is already locked.
var ErrLockHeld = errors.New("lock is held by another owner")

// Locker provides short-lived mutual exclusion keyed by name.
type Locker interface {
	// Acquire takes the lock for key for at most ttl. It does not wait: if the key is
	// held it returns ErrLockHeld. The returned release func must be called once the
	// protected work is done.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
