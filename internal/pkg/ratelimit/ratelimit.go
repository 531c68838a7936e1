package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key (client IP, admin id)
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	every   rate.Limit
}

// New allows limit requests per window for each key
func New(limit int, window time.Duration) *RateLimiter {
	every := rate.Limit(0)
	if limit > 0 && window > 0 {
		every = rate.Every(window / time.Duration(limit))
	}
	return &RateLimiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		every:   every,
	}
}

func (rl *RateLimiter) get(key string) *entry {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e
}

// Allow checks if a request is allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.get(key).limiter.Allow()
}

// Limit returns the configured requests per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// GetRemaining returns the whole tokens currently available to key
func (rl *RateLimiter) GetRemaining(key string) int {
	remaining := int(rl.get(key).limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// RetryAfter estimates how long key has to wait for its next token
func (rl *RateLimiter) RetryAfter(key string) time.Duration {
	if rl.every == 0 {
		return rl.window
	}
	r := rl.get(key).limiter.Reserve()
	defer r.Cancel()
	return r.Delay()
}

// Reset clears the rate limit for the given key
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.entries, key)
}

// Cleanup removes keys idle for longer than a window
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	for key, e := range rl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(rl.entries, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
