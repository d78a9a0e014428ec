package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
)

// Service records game events as a queryable activity log
type Service interface {
	// Subscribe registers the event logger to listen to all game events
	Subscribe(bus event.Bus) error

	// Recent returns logged entries for this service's slot, newest first
	Recent(ctx context.Context, eventType string, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	slot string
	now  func() time.Time
}

// NewService creates a new event logging service writing under slot
func NewService(repo Repository, slot string) Service {
	return &service{repo: repo, slot: slot, now: time.Now}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	event.SubscribeAll(bus, s.handleEvent)
	return nil
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := toMap(evt.Payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", evt.Type, err)
	}

	entry := Entry{
		Slot:      s.slot,
		EventType: string(evt.Type),
		Payload:   payload,
		Metadata:  evt.Metadata,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldSlot, s.slot)
	return nil
}

// Recent returns the newest entries, optionally of one type
func (s *service) Recent(ctx context.Context, eventType string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	filter := Filter{Slot: s.slot, Limit: limit}
	if eventType != "" {
		filter.EventType = &eventType
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes entries older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}

func toMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
