// Package engine drives tag resolution for the host editor: a
// revision-stamped per-buffer table cache, the innermost-enclosing-symbol
// resolver, and the trigger-facing surface that ties them together.
package engine

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/tagline/internal/tags"
)

// RefreshFunc rebuilds a buffer's symbol table, typically bound to an
// extractor over the buffer's live text.
type RefreshFunc func() (*tags.Table, error)

type cacheEntry struct {
	rev   int64
	table *tags.Table
}

// Cache stores one (revision, table) entry per buffer. Entries are replaced
// wholesale when the revision moves and removed only by explicit eviction.
// The host delivers triggers serially, but the mutex keeps the cache safe in
// concurrent hosts too.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// GetOrRefresh returns the cached table when the stored revision equals rev.
// On any mismatch it calls refresh; the new table is stored only on success.
// A refresh failure leaves any stale entry untouched and is returned to the
// caller, which simply skips the update for this cycle.
func (c *Cache) GetOrRefresh(bufferID string, rev int64, refresh RefreshFunc) (*tags.Table, error) {
	c.mu.RLock()
	e, ok := c.entries[bufferID]
	c.mu.RUnlock()
	if ok && e.rev == rev {
		return e.table, nil
	}

	table, err := refresh()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[bufferID] = cacheEntry{rev: rev, table: table}
	c.mu.Unlock()

	log.Debug().Str("buffer", bufferID).Int64("rev", rev).Int("tags", table.Len()).
		Msg("engine: refreshed tag table")
	return table, nil
}

// Evict removes any entry for the buffer. Evicting an unknown buffer is a
// no-op.
func (c *Cache) Evict(bufferID string) {
	c.mu.Lock()
	delete(c.entries, bufferID)
	c.mu.Unlock()
}
