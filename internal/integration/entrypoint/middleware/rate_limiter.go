// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed requests per window.
	defaultMaxAttempts = 10
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter limits how often each authenticated user may call an endpoint.
// Requests without a user fall back to the client IP.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// A non-positive maxAttempts disables limiting.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// It must run after Authenticate.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxAttempts <= 0 {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			key = userID.String()
		}

		if !rl.allow(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: domainerror.ErrImportRateLimited.Error(),
				Code:  string(domainerror.ErrCodeImportRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		rl.cleanup(now)
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// cleanup removes expired entries. Callers hold mu.
func (rl *RateLimiter) cleanup(now time.Time) {
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
