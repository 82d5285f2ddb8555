package cache

import (
	"sync"
	"time"
)

// DefaultTTL caps how stale a cached view can get even if an
// invalidation event is lost.
const DefaultTTL = 5 * time.Minute

type entry struct {
	body     []byte
	storedAt time.Time
}

// ViewCache holds rendered JSON payloads for the public read endpoints,
// keyed by logical view name ("team", "resources", "post:tax-guide-2026").
// Admin writes invalidate by name through the queue worker.
type ViewCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func NewViewCache(ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ViewCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (c *ViewCache) Get(view string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[view]
	c.mu.RUnlock()

	if !ok || time.Since(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.body, true
}

func (c *ViewCache) Set(view string, body []byte) {
	c.mu.Lock()
	c.entries[view] = entry{body: body, storedAt: time.Now()}
	c.mu.Unlock()
}

func (c *ViewCache) Invalidate(views ...string) {
	c.mu.Lock()
	for _, v := range views {
		delete(c.entries, v)
	}
	c.mu.Unlock()
}
