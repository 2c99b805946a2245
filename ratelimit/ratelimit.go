// Package ratelimit bounds how many requests a single client may issue per
// window using fixed-window counting. A client can issue up to 2x the
// threshold across a window boundary; that is inherent to fixed windows
// and part of this limiter's contract, not a defect.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultLimit  = 100
	DefaultWindow = time.Hour
)

type bucket struct {
	windowStart time.Time
	count       int
}

// Limiter is a per-client fixed-window request counter. One instance is
// shared process-wide; the mutex guards only the bucket map.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration

	now func() time.Time
}

// Decision is the outcome of one rate check. RetryAfter is meaningful only
// when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether clientID may issue another request in its current
// window, incrementing the count when it may. A rejected request is not
// counted.
func (l *Limiter) Allow(clientID string) bool {
	return l.Decide(clientID).Allowed
}

// Decide is Allow plus the wait until the client's window resets.
func (l *Limiter) Decide(clientID string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[clientID]
	if !ok || now.Sub(b.windowStart) >= l.window {
		b = &bucket{windowStart: now}
		l.buckets[clientID] = b
	}
	if b.count >= l.limit {
		return Decision{RetryAfter: b.windowStart.Add(l.window).Sub(now)}
	}
	b.count++
	return Decision{Allowed: true}
}

// Limit reports the configured per-window threshold.
func (l *Limiter) Limit() int { return l.limit }

// sweep drops buckets whose window has fully elapsed.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, id)
		}
	}
}

// StartJanitor sweeps stale buckets every interval until ctx is done.
func (l *Limiter) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.sweep()
			}
		}
	}()
}
