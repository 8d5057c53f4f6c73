package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l := New(15*time.Minute, 5)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("1.2.3.4")
		assert.True(t, ok, "attempt %d should be allowed", i+1)
	}

	ok, retryAfter := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, 15*time.Minute)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(15*time.Minute, 1)

	ok, _ := l.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4")
	assert.False(t, ok)

	ok, _ = l.Allow("5.6.7.8")
	assert.True(t, ok)
}

func TestLimiter_WindowResets(t *testing.T) {
	now := time.Now()
	l := New(15*time.Minute, 2)
	l.now = func() time.Time { return now }

	l.Allow("1.2.3.4")
	l.Allow("1.2.3.4")
	ok, _ := l.Allow("1.2.3.4")
	assert.False(t, ok)

	// Same window, still rejected.
	now = now.Add(14 * time.Minute)
	ok, retryAfter := l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.LessOrEqual(t, retryAfter, time.Minute)

	// Window elapsed, counter starts over.
	now = now.Add(2 * time.Minute)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestLimiter_ConcurrentIncrementsAreCounted(t *testing.T) {
	const attempts = 100
	l := New(time.Hour, 5)

	var wg sync.WaitGroup
	allowed := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("1.2.3.4"); ok {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	assert.Equal(t, 5, len(allowed))
}

func TestLimiter_PrunesStaleWindows(t *testing.T) {
	now := time.Now()
	l := New(time.Minute, 1)
	l.now = func() time.Time { return now }

	for i := 0; i < pruneThreshold; i++ {
		l.Allow(string(rune(i)))
	}
	assert.Len(t, l.windows, pruneThreshold)

	now = now.Add(2 * time.Minute)
	l.Allow("fresh")
	assert.Len(t, l.windows, 1)
}
