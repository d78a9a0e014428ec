package eventlog

import (
	"context"
	"time"
)

// Entry is one logged game event
type Entry struct {
	ID        int64                  `json:"id"`
	Slot      string                 `json:"slot"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Filter narrows an activity query. Results are newest first.
type Filter struct {
	Slot      string
	EventType *string
	Since     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an entry; ID is assigned by the store
	LogEvent(ctx context.Context, entry Entry) error

	// GetEvents retrieves entries matching filter, newest first
	GetEvents(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents removes entries created before cutoff
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
