package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterThreshold(t *testing.T) {
	l := New(3, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "call %d should be allowed", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"), "call over threshold should be rejected")
	assert.False(t, l.Allow("1.2.3.4"), "rejection should not consume budget")
}

func TestLimiterPerClientIsolation(t *testing.T) {
	l := New(1, time.Hour)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "a different client has its own window")
}

func TestLimiterWindowReset(t *testing.T) {
	l := New(2, time.Hour)
	now := time.Now()
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("c"))
	require.True(t, l.Allow("c"))
	require.False(t, l.Allow("c"))

	// Once the window elapses the client gets a fresh bucket with count 1.
	now = now.Add(time.Hour)
	assert.True(t, l.Allow("c"))
	assert.True(t, l.Allow("c"))
	assert.False(t, l.Allow("c"))
}

func TestLimiterRetryAfter(t *testing.T) {
	l := New(1, time.Hour)
	now := time.Now()
	l.now = func() time.Time { return now }

	require.True(t, l.Allow("c"))

	now = now.Add(15 * time.Minute)
	dec := l.Decide("c")
	require.False(t, dec.Allowed)
	assert.Equal(t, 45*time.Minute, dec.RetryAfter)
}

func TestLimiterSweep(t *testing.T) {
	l := New(1, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	require.Len(t, l.buckets, 2)

	now = now.Add(2 * time.Minute)
	l.sweep()
	assert.Empty(t, l.buckets)
}

func TestLimiterConcurrentAccess(t *testing.T) {
	l := New(1000, time.Hour)

	var wg sync.WaitGroup
	allowed := make([]int, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if l.Allow("shared") {
					allowed[g]++
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, n := range allowed {
		total += n
	}
	assert.Equal(t, 1000, total, "exactly the threshold should be admitted")
}
