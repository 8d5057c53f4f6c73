// Package ratelimit bounds repeated attempts per client identity within a
// fixed time window. Counters live in process memory and reset on restart.
package ratelimit

import (
	"sync"
	"time"
)

// pruneThreshold caps how many idle keys accumulate before stale windows are
// swept on the next insert.
const pruneThreshold = 1024

type window struct {
	start time.Time
	count int
}

type Limiter struct {
	windowSize time.Duration
	max        int

	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func New(windowSize time.Duration, max int) *Limiter {
	return &Limiter{
		windowSize: windowSize,
		max:        max,
		windows:    make(map[string]*window),
		now:        time.Now,
	}
}

// Allow counts one attempt for key and reports whether it is within the
// limit. The increment and the check happen under one lock, so two
// concurrent attempts can never both observe "4 of 5" and slip through.
// When the limit is exceeded it returns the time remaining until the
// window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.windowSize {
		if len(l.windows) >= pruneThreshold {
			l.prune(now)
		}
		l.windows[key] = &window{start: now, count: 1}
		return true, 0
	}

	w.count++
	if w.count > l.max {
		return false, w.start.Add(l.windowSize).Sub(now)
	}
	return true, 0
}

func (l *Limiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.windowSize {
			delete(l.windows, key)
		}
	}
}
