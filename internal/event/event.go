package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Game event types
const (
	PlayerLevelUp     Type = domain.EventTypePlayerLevelUp
	ShadowExtracted   Type = domain.EventTypeShadowExtracted
	ShadowLevelUp     Type = domain.EventTypeShadowLevelUp
	AreaUnlocked      Type = domain.EventTypeAreaUnlocked
	HuntCompleted     Type = domain.EventTypeHuntCompleted
	OfflineReconciled Type = domain.EventTypeOfflineReconciled
)

// AllGameTypes lists every event the game publishes
var AllGameTypes = []Type{
	PlayerLevelUp,
	ShadowExtracted,
	ShadowLevelUp,
	AreaUnlocked,
	HuntCompleted,
	OfflineReconciled,
}

// Metadata keys
const (
	MetadataKeySource = "source"
)

// Experience sources recorded in metadata
const (
	SourceHunt    = "hunt"
	SourceAccrual = "accrual"
	SourceOffline = "offline"
	SourceAdmin   = "admin"
)

func newEvent(t Type, payload interface{}, source string) Event {
	e := Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
	}
	if source != "" {
		e.Metadata = Metadata{MetadataKeySource: source}
	}
	return e
}

// NewPlayerLevelUpEvent creates a player level up event
func NewPlayerLevelUpEvent(result domain.LevelUpResult, source string, at time.Time) Event {
	return newEvent(PlayerLevelUp, domain.PlayerLevelUpPayload{
		OldLevel:         result.OldLevel,
		NewLevel:         result.NewLevel,
		StatPointsGained: result.StatPointsGained,
		Timestamp:        at.Unix(),
	}, source)
}

// NewShadowExtractedEvent creates a shadow extraction event
func NewShadowExtractedEvent(shadowID string, tmpl domain.ShadowTemplate, areaID string, at time.Time) Event {
	return newEvent(ShadowExtracted, domain.ShadowExtractedPayload{
		ShadowID:   shadowID,
		TemplateID: tmpl.ID,
		Name:       tmpl.Name,
		Rarity:     tmpl.Rarity,
		AreaID:     areaID,
		Timestamp:  at.Unix(),
	}, "")
}

// NewShadowLevelUpEvent creates a shadow level up event
func NewShadowLevelUpEvent(result domain.ShadowLevelResult, source string, at time.Time) Event {
	return newEvent(ShadowLevelUp, domain.ShadowLevelUpPayload{
		ShadowID:  result.ShadowID,
		OldLevel:  result.OldLevel,
		NewLevel:  result.NewLevel,
		Timestamp: at.Unix(),
	}, source)
}

// NewAreaUnlockedEvent creates an area unlock event
func NewAreaUnlockedEvent(area domain.Area, level int, at time.Time) Event {
	return newEvent(AreaUnlocked, domain.AreaUnlockedPayload{
		AreaID:    area.ID,
		Name:      area.Name,
		Level:     level,
		Timestamp: at.Unix(),
	}, "")
}

// NewHuntCompletedEvent creates a hunt completion event
func NewHuntCompletedEvent(result domain.HuntResult, source string, at time.Time) Event {
	return newEvent(HuntCompleted, domain.HuntCompletedPayload{
		AreaID:         result.AreaID,
		ExpGained:      result.ExpGained,
		ShadowsDropped: result.ExtractedShadows,
		Timestamp:      at.Unix(),
	}, source)
}

// NewOfflineReconciledEvent creates an offline reconciliation event
func NewOfflineReconciledEvent(report domain.OfflineReport, at time.Time) Event {
	return newEvent(OfflineReconciled, domain.OfflineReconciledPayload{
		Report:    report,
		Timestamp: at.Unix(),
	}, SourceOffline)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously in
// subscription order; every handler runs even if an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes a handler to every game event type
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllGameTypes {
		bus.Subscribe(t, handler)
	}
}
