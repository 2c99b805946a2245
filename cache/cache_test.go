package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubetext/api-gateway/models"
)

func payload(id string) models.TranscriptPayload {
	return models.TranscriptPayload{VideoID: id, Language: "en", Transcript: "text " + id, TotalSegments: 1}
}

func TestKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := Key("dQw4w9WgXcQ", []string{"pt", "en"}, true)
		k2 := Key("dQw4w9WgXcQ", []string{"pt", "en"}, true)
		assert.Equal(t, k1, k2)
	})

	t.Run("casing and whitespace normalized", func(t *testing.T) {
		k1 := Key("dQw4w9WgXcQ", []string{" PT ", "EN"}, true)
		k2 := Key("dQw4w9WgXcQ", []string{"pt", "en"}, true)
		assert.Equal(t, k1, k2)
	})

	t.Run("preference order is significant", func(t *testing.T) {
		k1 := Key("dQw4w9WgXcQ", []string{"pt", "en"}, true)
		k2 := Key("dQw4w9WgXcQ", []string{"en", "pt"}, true)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("timestamp flag is part of the key", func(t *testing.T) {
		k1 := Key("dQw4w9WgXcQ", nil, true)
		k2 := Key("dQw4w9WgXcQ", nil, false)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("video ID is part of the key", func(t *testing.T) {
		k1 := Key("dQw4w9WgXcQ", nil, true)
		k2 := Key("a1B2c3D4e5F", nil, true)
		assert.NotEqual(t, k1, k2)
	})
}

func TestCacheRoundTrip(t *testing.T) {
	c := New(time.Hour, 10)

	key := Key("dQw4w9WgXcQ", []string{"en"}, true)
	_, ok := c.Get(key)
	assert.False(t, ok, "expected miss on empty cache")

	c.Put(key, payload("dQw4w9WgXcQ"))
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, payload("dQw4w9WgXcQ"), got)
	assert.Equal(t, 1, c.Len())
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(time.Hour, 10)
	now := time.Now()
	c.now = func() time.Time { return now }

	key := Key("dQw4w9WgXcQ", nil, true)
	c.Put(key, payload("dQw4w9WgXcQ"))

	now = now.Add(time.Hour - time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok, "entry within TTL should hit")

	now = now.Add(2 * time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry past TTL should miss")
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on lookup")
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	c := New(time.Hour, 3)
	now := time.Now()
	c.now = func() time.Time { return now }

	keys := make([]string, 4)
	for i := 0; i < 4; i++ {
		keys[i] = Key(fmt.Sprintf("video%05d", i), nil, true)
	}

	for i := 0; i < 3; i++ {
		c.Put(keys[i], payload(fmt.Sprintf("v%d", i)))
		now = now.Add(time.Minute)
	}
	require.Equal(t, 3, c.Len())

	// Admitting a fourth entry evicts the oldest by creation time.
	c.Put(keys[3], payload("v3"))
	assert.Equal(t, 3, c.Len())

	_, ok := c.Get(keys[0])
	assert.False(t, ok, "oldest entry should have been evicted")
	for i := 1; i < 4; i++ {
		_, ok := c.Get(keys[i])
		assert.True(t, ok, "entry %d should survive", i)
	}
}

func TestCacheBoundNeverExceeded(t *testing.T) {
	c := New(time.Hour, 5)
	for i := 0; i < 50; i++ {
		c.Put(Key(fmt.Sprintf("video%05d", i), nil, false), payload("x"))
		assert.LessOrEqual(t, c.Len(), 5)
	}
}

func TestCachePutOverwritesAndResetsAge(t *testing.T) {
	c := New(time.Hour, 10)
	now := time.Now()
	c.now = func() time.Time { return now }

	key := Key("dQw4w9WgXcQ", nil, true)
	c.Put(key, payload("old"))

	now = now.Add(50 * time.Minute)
	c.Put(key, payload("new"))

	// 70 minutes after the first put, 20 after the second: still fresh.
	now = now.Add(20 * time.Minute)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "new", got.VideoID)
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvictionPrefersExpired(t *testing.T) {
	c := New(time.Minute, 2)
	now := time.Now()
	c.now = func() time.Time { return now }

	kExpired := Key("video00000", nil, true)
	kFresh := Key("video00001", nil, true)
	c.Put(kExpired, payload("stale"))

	now = now.Add(2 * time.Minute)
	c.Put(kFresh, payload("fresh"))
	c.Put(Key("video00002", nil, true), payload("newer"))

	_, ok := c.Get(kFresh)
	assert.True(t, ok, "fresh entry should survive when an expired one can be dropped")
}
