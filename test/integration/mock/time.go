package mock

import (
	"sync"
	"time"
)

// Time is a clock that starts at a chosen instant and then advances with the wall clock.
type Time struct {
	mu               sync.RWMutex
	currentStartTime time.Time
	updatedAt        time.Time
}

// NewTime returns a clock reading the current wall time.
func NewTime() *Time {
	now := time.Now()
	return &Time{
		currentStartTime: now,
		updatedAt:        now,
	}
}

// SetCurrentTime moves the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.currentStartTime = currentTime
	t.updatedAt = time.Now()
}

// Now returns the simulated time.
func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.currentStartTime.Add(time.Since(t.updatedAt))
}
