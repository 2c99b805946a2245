// Package cache holds formatted transcript responses for a bounded time
// and bounded count. One Cache instance is shared process-wide.
//
// There is no single-flight deduplication: two concurrent lookups for the
// same absent key may both proceed to fetch, and the later Put wins.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"tubetext/api-gateway/models"
	"tubetext/api-gateway/transcript"
)

const (
	DefaultTTL        = time.Hour
	DefaultMaxEntries = 1000
)

type entry struct {
	payload   models.TranscriptPayload
	createdAt time.Time
}

// Cache is a TTL- and capacity-bounded store keyed on request shape.
// The mutex guards only map access; it is never held across a fetch.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int

	now func() time.Time
}

func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Key builds a deterministic cache key from the request shape. Language
// codes are normalized (trimmed, lowercased) but their order is preserved:
// preference order decides which track gets selected, so reordering is a
// different request.
func Key(videoID string, languages []string, includeTimestamps bool) string {
	parts := make([]string, 0, len(languages)+2)
	parts = append(parts, videoID)
	for _, lang := range languages {
		if norm := transcript.NormalizeLanguage(lang); norm != "" {
			parts = append(parts, norm)
		}
	}
	parts = append(parts, fmt.Sprintf("ts=%t", includeTimestamps))
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("tr:%x", sum[:16])
}

// Get returns the payload stored under key. An entry older than the TTL is
// removed and reported as a miss.
func (c *Cache) Get(key string) (models.TranscriptPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return models.TranscriptPayload{}, false
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		delete(c.entries, key)
		return models.TranscriptPayload{}, false
	}
	return e.payload, true
}

// Put stores payload under key, evicting the oldest-by-creation entry when
// the store is full. Putting an existing key overwrites it and resets its
// age.
func (c *Cache) Put(key string, payload models.TranscriptPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{payload: payload, createdAt: c.now()}
}

// Len reports the number of resident entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MaxEntries reports the configured capacity.
func (c *Cache) MaxEntries() int {
	return c.maxEntries
}

// evictOldestLocked removes expired entries first, then the entry with the
// oldest creation timestamp until one slot is free. Caller holds c.mu.
func (c *Cache) evictOldestLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	for len(c.entries) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.createdAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.createdAt
			}
		}
		if oldestKey == "" {
			return
		}
		delete(c.entries, oldestKey)
	}
}

// sweep removes all expired entries.
func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

// StartJanitor sweeps expired entries every interval until ctx is done.
func (c *Cache) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.sweep()
			}
		}
	}()
}
