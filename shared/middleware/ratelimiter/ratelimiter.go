package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per identity (ip, user, "global").
// Buckets untouched for longer than expirationTime are dropped by Cleanup.
type UserRateLimiter struct {
	limiters       map[string]*entry
	mu             sync.Mutex
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
	now            func() time.Time
}

// New creates a limiter allowing perSecond events with the given burst per identity.
func New(perSecond float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*entry),
		rate:           rate.Limit(perSecond),
		burst:          burst,
		expirationTime: expirationTime,
		now:            time.Now,
	}
}

func (url *UserRateLimiter) getLimiter(identity string) *rate.Limiter {
	url.mu.Lock()
	defer url.mu.Unlock()

	e, ok := url.limiters[identity]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(url.rate, url.burst)}
		url.limiters[identity] = e
	}
	e.lastSeen = url.now()
	return e.limiter
}

// Allow checks if a request should be allowed for a given identity.
func (url *UserRateLimiter) Allow(identity string) bool {
	return url.getLimiter(identity).AllowN(url.now(), 1)
}

// Cleanup drops buckets that have been idle past the expiration time.
func (url *UserRateLimiter) Cleanup() int {
	url.mu.Lock()
	defer url.mu.Unlock()

	cutoff := url.now().Add(-url.expirationTime)
	removed := 0
	for id, e := range url.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(url.limiters, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked identities.
func (url *UserRateLimiter) Len() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}
