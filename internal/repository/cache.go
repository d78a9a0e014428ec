package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// SnapshotCacheVersion is bumped when the cached encoding changes so stale
// entries are dropped instead of decoded
const SnapshotCacheVersion = "1"

// DefaultSnapshotCacheSize is the number of save slots kept in memory
const DefaultSnapshotCacheSize = 16

type cachedSnapshot struct {
	version string
	data    []byte
}

// CachedSnapshot is a read-through, write-through cache in front of another
// snapshot store. Entries are held encoded so callers never share pointers
// with the cache.
type CachedSnapshot struct {
	inner Snapshot
	lru   *expirable.LRU[string, *cachedSnapshot]
}

// NewCachedSnapshot wraps inner with an LRU of size entries that expire after ttl
func NewCachedSnapshot(inner Snapshot, size int, ttl time.Duration) *CachedSnapshot {
	if size <= 0 {
		size = DefaultSnapshotCacheSize
	}
	return &CachedSnapshot{
		inner: inner,
		lru:   expirable.NewLRU[string, *cachedSnapshot](size, nil, ttl),
	}
}

// SaveSnapshot writes through to the inner store and refreshes the cache
func (c *CachedSnapshot) SaveSnapshot(ctx context.Context, slot string, snap *domain.Snapshot) error {
	if err := c.inner.SaveSnapshot(ctx, slot, snap); err != nil {
		c.lru.Remove(slot)
		return err
	}
	c.put(slot, snap)
	return nil
}

// LoadSnapshot serves from cache, falling back to the inner store
func (c *CachedSnapshot) LoadSnapshot(ctx context.Context, slot string) (*domain.Snapshot, error) {
	if entry, ok := c.lru.Get(slot); ok {
		if entry.version == SnapshotCacheVersion {
			var snap domain.Snapshot
			if err := json.Unmarshal(entry.data, &snap); err == nil {
				return &snap, nil
			}
		}
		c.lru.Remove(slot)
	}

	snap, err := c.inner.LoadSnapshot(ctx, slot)
	if err != nil {
		return nil, err
	}
	c.put(slot, snap)
	return snap, nil
}

// DeleteSnapshot removes the slot from both the cache and the inner store
func (c *CachedSnapshot) DeleteSnapshot(ctx context.Context, slot string) error {
	c.lru.Remove(slot)
	return c.inner.DeleteSnapshot(ctx, slot)
}

// ListSlots always asks the inner store
func (c *CachedSnapshot) ListSlots(ctx context.Context) ([]string, error) {
	return c.inner.ListSlots(ctx)
}

// Invalidate drops every cached slot
func (c *CachedSnapshot) Invalidate() {
	c.lru.Purge()
}

func (c *CachedSnapshot) put(slot string, snap *domain.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		c.lru.Remove(slot)
		return
	}
	c.lru.Add(slot, &cachedSnapshot{version: SnapshotCacheVersion, data: data})
}

// IsNotFound reports whether err means the slot holds no save
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrSnapshotNotFound)
}
