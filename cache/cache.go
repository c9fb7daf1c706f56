// Package cache keeps recent run outcomes so the API can answer repeated
// identical requests without driving the browser again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/use-agent/scout/models"
)

// entry holds a cached run with its creation timestamp.
type entry struct {
	result    *models.RunResult
	createdAt time.Time
}

// Cache is a simple in-memory cache of run outcomes.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a Cache with the given maximum number of entries.
// A background goroutine runs every 5 minutes to evict entries older than
// 1 hour until Close is called.
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        time.Hour,
		done:       make(chan struct{}),
	}

	go c.cleanupLoop(5 * time.Minute)
	return c
}

// Key derives a cache key from the request fields that shape a run.
// Search terms are compared case-insensitively.
func Key(req models.ScrapeRequest) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(req.SearchTerm)))
	h.Write([]byte("|"))
	h.Write([]byte(req.Category))
	h.Write([]byte("|"))
	h.Write([]byte(strconv.Itoa(req.Limit)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached run if it exists and is younger than maxAgeMs.
// If maxAgeMs <= 0, no lookup is performed.
func (c *Cache) Get(key string, maxAgeMs int) (*models.RunResult, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) > time.Duration(maxAgeMs)*time.Millisecond {
		return nil, false
	}
	return e.result, true
}

// Set stores a run outcome. If the cache is at capacity the oldest entry
// is evicted to make room.
func (c *Cache) Set(key string, res *models.RunResult) {
	if c.maxEntries <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		var (
			oldestKey string
			oldestAt  time.Time
		)
		for k, e := range c.store {
			if oldestKey == "" || e.createdAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.createdAt
			}
		}
		delete(c.store, oldestKey)
	}

	c.store[key] = &entry{result: res, createdAt: time.Now()}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Purge drops every entry. The API calls it after a run changes the
// corpus, since cached totals would be stale.
func (c *Cache) Purge() {
	c.mu.Lock()
	clear(c.store)
	c.mu.Unlock()
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Cache) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired(time.Now().Add(-c.ttl))
		}
	}
}

func (c *Cache) evictExpired(cutoff time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.store {
		if e.createdAt.Before(cutoff) {
			delete(c.store, k)
		}
	}
}
