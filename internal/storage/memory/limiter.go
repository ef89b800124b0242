package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a per-key token bucket used when Redis is not configured.
// Buckets refill at limit per window with a burst of limit.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	every   rate.Limit
	buckets map[string]*rate.Limiter
}

// NewLimiter allows limit events per window for each key
func NewLimiter(limit int, window time.Duration) *Limiter {
	every := rate.Inf
	if limit > 0 && window > 0 {
		every = rate.Every(window / time.Duration(limit))
	}
	return &Limiter{limit: limit, every: every, buckets: make(map[string]*rate.Limiter)}
}

func (l *Limiter) Allow(_ context.Context, key string) bool {
	if l == nil || l.limit <= 0 || key == "" {
		return true
	}

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.every, l.limit)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.Allow()
}
