package sse

import (
	"context"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all game event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.PlayerLevelUp, s.handlePlayerLevelUp)
	s.bus.Subscribe(event.ShadowExtracted, s.handleShadowExtracted)
	s.bus.Subscribe(event.ShadowLevelUp, s.handleShadowLevelUp)
	s.bus.Subscribe(event.AreaUnlocked, s.handleAreaUnlocked)
	s.bus.Subscribe(event.HuntCompleted, s.handleHuntCompleted)
	s.bus.Subscribe(event.OfflineReconciled, s.handleOfflineReconciled)

	logger.Info(LogMsgSubscriberRegistered, "types", event.AllGameTypes)
}

func sourceOf(evt event.Event) string {
	if src, ok := evt.GetMetadataValue(event.MetadataKeySource).(string); ok {
		return src
	}
	return ""
}

func (s *Subscriber) broadcast(ctx context.Context, eventType string, payload interface{}) {
	s.hub.Broadcast(eventType, payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", eventType)
}

func (s *Subscriber) handlePlayerLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.PlayerLevelUpPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypePlayerLevelUp, PlayerLevelUpPayload{
		OldLevel:         p.OldLevel,
		NewLevel:         p.NewLevel,
		StatPointsGained: p.StatPointsGained,
		Source:           sourceOf(evt),
	})
	return nil
}

func (s *Subscriber) handleShadowExtracted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.ShadowExtractedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeShadowExtracted, ShadowExtractedPayload{
		ShadowID: p.ShadowID,
		Name:     p.Name,
		Rarity:   string(p.Rarity),
		AreaID:   p.AreaID,
	})
	return nil
}

func (s *Subscriber) handleShadowLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.ShadowLevelUpPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeShadowLevelUp, ShadowLevelUpPayload{
		ShadowID: p.ShadowID,
		OldLevel: p.OldLevel,
		NewLevel: p.NewLevel,
		Source:   sourceOf(evt),
	})
	return nil
}

func (s *Subscriber) handleAreaUnlocked(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.AreaUnlockedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeAreaUnlocked, AreaUnlockedPayload{
		AreaID: p.AreaID,
		Name:   p.Name,
		Level:  p.Level,
	})
	return nil
}

func (s *Subscriber) handleHuntCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.HuntCompletedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeHuntCompleted, HuntCompletedPayload{
		AreaID:         p.AreaID,
		ExpGained:      p.ExpGained,
		ExpDisplay:     utils.FormatNumber(p.ExpGained),
		ShadowsDropped: p.ShadowsDropped,
	})
	return nil
}

func (s *Subscriber) handleOfflineReconciled(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.OfflineReconciledPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.broadcast(ctx, EventTypeOfflineReconciled, OfflineReconciledPayload{
		TimeOffline:        utils.FormatDuration(p.Report.TimeOffline),
		ExpGained:          p.Report.ExpGained,
		PlayerLevelsGained: p.Report.PlayerLevelsGained,
		AreasUnlocked:      p.Report.AreasUnlocked,
		HuntsCompleted:     p.Report.HuntsCompleted,
	})
	return nil
}
