package character

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/TaskQuest_Go/internal/domain"
)

// CacheConfig sizes the snapshot cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the stock cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedSnapshotEntry wraps a snapshot with version metadata for cache invalidation
type cachedSnapshotEntry struct {
	Version  string                    `json:"version"`
	Snapshot *domain.CharacterSnapshot `json:"snapshot"`
	CachedAt time.Time                 `json:"cached_at"`
}

// snapshotCache keeps derived character snapshots keyed by user ID,
// with time-based expiration and version-based invalidation.
//
// Every Invalidate bumps the user's generation. Readers capture the
// generation before going to the database and fill through SetIfGeneration,
// so a read that raced a write cannot put the old snapshot back.
type snapshotCache struct {
	lru    *expirable.LRU[string, *cachedSnapshotEntry]
	hits   atomic.Int64
	misses atomic.Int64

	mu          sync.Mutex
	epoch       uint64 // bumped by Clear
	generations map[string]uint64
}

// generation identifies the cache state a reader started from
type generation struct {
	epoch uint64
	user  uint64
}

func newSnapshotCache(config CacheConfig) *snapshotCache {
	if config.Size <= 0 {
		config.Size = DefaultCacheSize
	}
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	return &snapshotCache{
		lru:         expirable.NewLRU[string, *cachedSnapshotEntry](config.Size, nil, config.TTL),
		generations: make(map[string]uint64),
	}
}

// Get returns the cached snapshot for userID.
// Entries written under another schema version are dropped and count as a miss.
func (c *snapshotCache) Get(userID string) (*domain.CharacterSnapshot, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.Snapshot, true
}

// Set stores a snapshot under the current schema version
func (c *snapshotCache) Set(userID string, snapshot *domain.CharacterSnapshot) {
	c.lru.Add(userID, &cachedSnapshotEntry{
		Version:  CacheSchemaVersion,
		Snapshot: snapshot,
		CachedAt: time.Now(),
	})
}

// Generation returns userID's current invalidation state
func (c *snapshotCache) Generation(userID string) generation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return generation{epoch: c.epoch, user: c.generations[userID]}
}

// SetIfGeneration stores snapshot only if userID has not been invalidated
// since gen was read. It reports whether the snapshot was stored.
func (c *snapshotCache) SetIfGeneration(userID string, gen generation, snapshot *domain.CharacterSnapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != (generation{epoch: c.epoch, user: c.generations[userID]}) {
		return false
	}
	c.Set(userID, snapshot)
	return true
}

// Invalidate removes a user's snapshot
func (c *snapshotCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	c.lru.Remove(userID)
}

// Clear removes all entries from the cache
func (c *snapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.lru.Purge()
}

// GetStats returns hit/miss counters and the current entry count
func (c *snapshotCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
