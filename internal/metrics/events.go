package metrics

import (
	"context"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlayerLevelUp:
		var p domain.PlayerLevelUpPayload
		if p, err = event.DecodePayload[domain.PlayerLevelUpPayload](evt.Payload); err == nil {
			PlayerLevelUps.Add(float64(p.NewLevel - p.OldLevel))
		}

	case event.ShadowExtracted:
		var p domain.ShadowExtractedPayload
		if p, err = event.DecodePayload[domain.ShadowExtractedPayload](evt.Payload); err == nil {
			ShadowsExtracted.WithLabelValues(string(p.Rarity)).Inc()
		}

	case event.ShadowLevelUp:
		var p domain.ShadowLevelUpPayload
		if p, err = event.DecodePayload[domain.ShadowLevelUpPayload](evt.Payload); err == nil {
			ShadowLevelUps.Add(float64(p.NewLevel - p.OldLevel))
		}

	case event.AreaUnlocked:
		AreasUnlocked.Inc()

	case event.HuntCompleted:
		var p domain.HuntCompletedPayload
		if p, err = event.DecodePayload[domain.HuntCompletedPayload](evt.Payload); err == nil {
			HuntsCompleted.WithLabelValues(p.AreaID).Inc()
		}

	case event.OfflineReconciled:
		OfflineReconciliations.WithLabelValues(OutcomeApplied).Inc()
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
