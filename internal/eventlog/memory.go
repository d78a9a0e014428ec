package eventlog

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps the most recent entries in memory. It backs the
// activity log when saves live on disk rather than in Postgres.
type MemoryRepository struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	nextID   int64
}

// NewMemoryRepository creates a log holding at most capacity entries
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// LogEvent appends entry, evicting the oldest when full
func (r *MemoryRepository) LogEvent(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	return nil
}

// GetEvents scans newest first
func (r *MemoryRepository) GetEvents(_ context.Context, filter Filter) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Entry{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if filter.Slot != "" && e.Slot != filter.Slot {
			continue
		}
		if filter.EventType != nil && e.EventType != *filter.EventType {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// CleanupOldEvents drops entries created before cutoff
func (r *MemoryRepository) CleanupOldEvents(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	var removed int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}
