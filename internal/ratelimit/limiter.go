package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by (action, client
// identity). Counters live in process memory; the mutex keeps the
// "no more than N requests per window" guarantee under parallel handlers.
type Limiter struct {
	mu           sync.Mutex
	window       time.Duration
	defaultLimit int
	limits       map[string]int
	buckets      map[string]*bucket
	lastSweep    time.Time
	now          func() time.Time
}

type bucket struct {
	count       int
	windowStart time.Time
}

func New(window time.Duration, defaultLimit int) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	if defaultLimit < 1 {
		defaultLimit = 1
	}

	return &Limiter{
		window:       window,
		defaultLimit: defaultLimit,
		limits:       make(map[string]int),
		buckets:      make(map[string]*bucket),
		now:          time.Now,
	}
}

// SetLimit overrides the per-window limit for one action. Not safe to call
// concurrently with Allow; configure limits at startup.
func (l *Limiter) SetLimit(action string, limit int) {
	if limit < 1 {
		return
	}
	l.limits[action] = limit
}

// Allow reports whether the client may perform the action, counting the
// request against the current window if so.
func (l *Limiter) Allow(action string, clientKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	limit, ok := l.limits[action]
	if !ok {
		limit = l.defaultLimit
	}

	key := action + ":" + clientKey
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if b.count >= limit {
		return false
	}
	b.count++
	return true
}

// sweep drops buckets whose window expired, at most once per window, so the
// map doesn't grow with every client ever seen.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, key)
		}
	}
}
