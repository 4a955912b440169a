package feed

import (
	"fmt"
	"sync"
	"time"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/domain/entity"
)

// batchCache is a process-local TTL cache for cleaned batches. Entries are
// written by fetches and by the warmer; nothing is persisted.
type batchCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	batch   entity.Batch
	expires time.Time
}

func newBatchCache(ttl time.Duration) *batchCache {
	return &batchCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// batchKey identifies one (kind, query, page, limit) request.
func batchKey(kind entity.Kind, query string, params pagination.Params) string {
	return fmt.Sprintf("%s|%s|%d|%d", kind, query, params.Page, params.Limit)
}

func (c *batchCache) get(key string) (entity.Batch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.batch, true
}

func (c *batchCache) set(key string, batch entity.Batch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop anything already expired while we hold the lock; the map stays
	// bounded by the set of keys actively requested within one TTL window.
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{batch: batch, expires: now.Add(c.ttl)}
}
