package standings

import "sync"

// Cache stores snapshots per season and week so a later run can resume from
// the latest cached week.
type Cache interface {
	Get(season string, week int) (*Snapshot, bool)
	Put(season string, s *Snapshot)
}

type cacheKey struct {
	season string
	week   int
}

// MemoryCache is a Cache backed by a map.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[cacheKey]*Snapshot
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[cacheKey]*Snapshot)}
}

// Get returns the snapshot of a season after week.
func (c *MemoryCache) Get(season string, week int) (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.items[cacheKey{season: season, week: week}]
	return s, ok
}

// Put stores s under its own week.
func (c *MemoryCache) Put(season string, s *Snapshot) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey{season: season, week: s.Week()}] = s
}

// Len returns the number of cached snapshots.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
