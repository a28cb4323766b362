package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	last       time.Time
}

// Limiter is a keyed token bucket. The fetch pool uses one key per upstream
// host so list scraping and quote fetching pace independently.
type Limiter struct {
	mu sync.Mutex
	m  map[string]*bucket
}

func New() *Limiter { return &Limiter{m: make(map[string]*bucket)} }

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	return l.allowAt(key, capacity, refillPerSec, time.Now())
}

func (l *Limiter) allowAt(key string, capacity, refillPerSec float64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, refillRate: refillPerSec, last: now}
		l.m[key] = b
	}
	// refill
	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens -= 1
		return true
	}
	return false
}

// Wait blocks until a token is available for key or ctx is done. Polling at
// a fraction of the refill interval keeps the wakeup overshoot small.
func (l *Limiter) Wait(ctx context.Context, key string, capacity, refillPerSec float64) error {
	if l.Allow(key, capacity, refillPerSec) {
		return nil
	}

	interval := 10 * time.Millisecond
	if refillPerSec > 0 {
		interval = time.Duration(float64(time.Second) / refillPerSec / 4)
		if interval < time.Millisecond {
			interval = time.Millisecond
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.Allow(key, capacity, refillPerSec) {
				return nil
			}
		}
	}
}
