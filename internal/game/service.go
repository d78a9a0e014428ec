package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/ShadowArmy_Go/internal/catalog"
	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
	"github.com/osse101/ShadowArmy_Go/internal/metrics"
	"github.com/osse101/ShadowArmy_Go/internal/repository"
	"github.com/osse101/ShadowArmy_Go/internal/telemetry"
)

// Service is the single entry point to a running game. Every method is
// serialized behind one lock, so the scheduler and HTTP handlers can call it
// concurrently.
type Service interface {
	// Queries
	Player(ctx context.Context) domain.PlayerProgress
	Shadows(ctx context.Context) []ShadowView
	Shadow(ctx context.Context, id string) (ShadowView, error)
	Deployments(ctx context.Context) map[string][]string
	UnlockedAreas(ctx context.Context) []domain.Area
	HuntingStatus(ctx context.Context) domain.HuntingStatus
	ArmyStats(ctx context.Context) domain.ShadowArmyStats
	HunterStats(ctx context.Context) domain.HunterStats
	ExpPerSecond(ctx context.Context) float64
	Catalog() *catalog.Catalog

	// Player commands
	ApplyExperience(ctx context.Context, amount float64) (ExperienceOutcome, error)
	AllocateStatPoint(ctx context.Context, stat string) (bool, error)

	// Hunting commands
	StartHunting(ctx context.Context, areaID string) error
	StopHunting(ctx context.Context)
	CompleteHunt(ctx context.Context) (domain.HuntResult, error)

	// Shadow commands
	ExtractShadow(ctx context.Context, templateID string) (string, error)
	GainShadowExp(ctx context.Context, shadowID string, amount float64) (domain.ShadowLevelResult, error)
	Deploy(ctx context.Context, shadowID, areaID string) error
	Recall(ctx context.Context, shadowID string) error
	Reassign(ctx context.Context, shadowID, areaID string) error

	// Driven by the scheduler
	HuntTick(ctx context.Context) (*domain.HuntResult, error)
	AccrualTick(ctx context.Context) (domain.AccrualResult, error)
	Checkpoint(ctx context.Context)
	Reconcile(ctx context.Context) (domain.OfflineReport, error)

	// Persistence
	Snapshot(ctx context.Context) *domain.Snapshot
	Restore(ctx context.Context, snap *domain.Snapshot) error
	Save(ctx context.Context) error
	Load(ctx context.Context) (domain.OfflineReport, error)
	ResetGame(ctx context.Context) error
}

type service struct {
	mu     sync.Mutex
	state  *State
	clock  Clock
	bus    event.Bus
	repo   repository.Snapshot
	slot   string
	tracer trace.Tracer
}

// NewService wraps a game state. repo may be nil, in which case Save and Load
// are unavailable.
func NewService(state *State, clock Clock, bus event.Bus, repo repository.Snapshot, slot string) Service {
	if clock == nil {
		clock = NewRealClock()
	}
	if bus == nil {
		bus = event.NewMemoryBus()
	}
	if slot == "" {
		slot = DefaultSaveSlot
	}
	return &service{
		state:  state,
		clock:  clock,
		bus:    bus,
		repo:   repo,
		slot:   slot,
		tracer: telemetry.Tracer("game"),
	}
}

// exec runs fn under the lock, then publishes whatever events it produced
// after the lock is released so subscribers may query the service.
func (s *service) exec(ctx context.Context, fn func(now time.Time) error) error {
	s.mu.Lock()
	err := fn(s.clock.Now())
	events := s.state.Drain()
	s.mu.Unlock()

	s.publish(ctx, events)
	return err
}

func (s *service) publish(ctx context.Context, events []event.Event) {
	log := logger.FromContext(ctx)
	for _, e := range events {
		if err := s.bus.Publish(ctx, e); err != nil {
			log.Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
		}
	}
}

func (s *service) read(fn func(now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.clock.Now())
}

func (s *service) Player(_ context.Context) domain.PlayerProgress {
	var p domain.PlayerProgress
	s.read(func(time.Time) { p = s.state.Player() })
	return p
}

func (s *service) Shadows(_ context.Context) []ShadowView {
	var out []ShadowView
	s.read(func(time.Time) { out = s.state.Shadows() })
	return out
}

func (s *service) Shadow(_ context.Context, id string) (ShadowView, error) {
	var (
		out ShadowView
		err error
	)
	s.read(func(time.Time) { out, err = s.state.Shadow(id) })
	return out, err
}

func (s *service) Deployments(_ context.Context) map[string][]string {
	var out map[string][]string
	s.read(func(time.Time) { out = s.state.Deployments() })
	return out
}

func (s *service) UnlockedAreas(_ context.Context) []domain.Area {
	var out []domain.Area
	s.read(func(time.Time) { out = s.state.UnlockedAreas() })
	return out
}

func (s *service) HuntingStatus(_ context.Context) domain.HuntingStatus {
	var out domain.HuntingStatus
	s.read(func(now time.Time) { out = s.state.HuntingStatus(now) })
	return out
}

func (s *service) ArmyStats(_ context.Context) domain.ShadowArmyStats {
	var out domain.ShadowArmyStats
	s.read(func(time.Time) { out = s.state.ArmyStats() })
	return out
}

func (s *service) HunterStats(_ context.Context) domain.HunterStats {
	var out domain.HunterStats
	s.read(func(time.Time) { out = s.state.HunterStats() })
	return out
}

func (s *service) ExpPerSecond(_ context.Context) float64 {
	var out float64
	s.read(func(time.Time) { out = s.state.ExpPerSecond() })
	return out
}

// Catalog is immutable and needs no lock
func (s *service) Catalog() *catalog.Catalog {
	return s.state.catalog
}

func (s *service) ApplyExperience(ctx context.Context, amount float64) (ExperienceOutcome, error) {
	log := logger.FromContext(ctx)
	var out ExperienceOutcome
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		out, err = s.state.ApplyExperience(amount, now)
		return err
	})
	if err != nil {
		log.Warn(LogMsgCommandRejected, "command", "apply_experience", "amount", amount, "error", err)
		return out, err
	}
	if out.LeveledUp() {
		log.Info(LogMsgPlayerLeveledUp, "old_level", out.OldLevel, "new_level", out.NewLevel, "areas_unlocked", out.AreasUnlocked)
	}
	return out, nil
}

func (s *service) AllocateStatPoint(ctx context.Context, stat string) (bool, error) {
	var spent bool
	err := s.exec(ctx, func(time.Time) error {
		var err error
		spent, err = s.state.AllocateStatPoint(domain.StatName(stat))
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCommandRejected, "command", "allocate_stat", "stat", stat, "error", err)
	}
	return spent, err
}

func (s *service) StartHunting(ctx context.Context, areaID string) error {
	log := logger.FromContext(ctx)
	err := s.exec(ctx, func(now time.Time) error {
		return s.state.StartHunting(areaID, now)
	})
	if err != nil {
		log.Warn(LogMsgCommandRejected, "command", "start_hunting", "area_id", areaID, "error", err)
		return err
	}
	log.Info(LogMsgHuntingStarted, "area_id", areaID)
	return nil
}

func (s *service) StopHunting(ctx context.Context) {
	_ = s.exec(ctx, func(time.Time) error {
		s.state.StopHunting()
		return nil
	})
	logger.FromContext(ctx).Info(LogMsgHuntingStopped)
}

func (s *service) CompleteHunt(ctx context.Context) (domain.HuntResult, error) {
	ctx, span := s.tracer.Start(ctx, "game.CompleteHunt")
	defer span.End()

	var out domain.HuntResult
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		out, err = s.state.CompleteHunt(now)
		return err
	})
	if err != nil {
		span.RecordError(err)
		logger.FromContext(ctx).Warn(LogMsgCommandRejected, "command", "complete_hunt", "error", err)
		return out, err
	}
	s.logHunt(ctx, span, out)
	return out, nil
}

func (s *service) logHunt(ctx context.Context, span trace.Span, result domain.HuntResult) {
	span.SetAttributes(
		attribute.String("area_id", result.AreaID),
		attribute.Int("cycles", result.Cycles),
		attribute.Int("shadows_extracted", len(result.ExtractedShadows)),
	)
	log := logger.FromContext(ctx)
	log.Debug(LogMsgHuntCompleted, "area_id", result.AreaID, "exp_gained", result.ExpGained)
	for _, id := range result.ExtractedShadows {
		log.Info(LogMsgShadowExtracted, "shadow_id", id, "area_id", result.AreaID)
	}
	if result.LevelUp.LeveledUp() {
		log.Info(LogMsgPlayerLeveledUp, "old_level", result.LevelUp.OldLevel, "new_level", result.LevelUp.NewLevel)
	}
}

func (s *service) ExtractShadow(ctx context.Context, templateID string) (string, error) {
	log := logger.FromContext(ctx)
	var id string
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		id, err = s.state.ExtractShadow(templateID, now)
		return err
	})
	if err != nil {
		log.Warn(LogMsgCommandRejected, "command", "extract_shadow", "template_id", templateID, "error", err)
		return "", err
	}
	log.Info(LogMsgShadowExtracted, "shadow_id", id, "template_id", templateID)
	return id, nil
}

func (s *service) GainShadowExp(ctx context.Context, shadowID string, amount float64) (domain.ShadowLevelResult, error) {
	var out domain.ShadowLevelResult
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		out, err = s.state.GainShadowExp(shadowID, amount, now)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCommandRejected, "command", "gain_shadow_exp", "shadow_id", shadowID, "error", err)
	}
	return out, err
}

func (s *service) Deploy(ctx context.Context, shadowID, areaID string) error {
	return s.deployment(ctx, "deploy", shadowID, areaID, func() error {
		return s.state.Deploy(shadowID, areaID)
	})
}

func (s *service) Recall(ctx context.Context, shadowID string) error {
	return s.deployment(ctx, "recall", shadowID, "", func() error {
		return s.state.Recall(shadowID)
	})
}

func (s *service) Reassign(ctx context.Context, shadowID, areaID string) error {
	return s.deployment(ctx, "reassign", shadowID, areaID, func() error {
		return s.state.Reassign(shadowID, areaID)
	})
}

func (s *service) deployment(ctx context.Context, command, shadowID, areaID string, fn func() error) error {
	log := logger.FromContext(ctx)
	err := s.exec(ctx, func(time.Time) error { return fn() })
	if err != nil {
		log.Warn(LogMsgCommandRejected, "command", command, "shadow_id", shadowID, "area_id", areaID, "error", err)
		return err
	}
	log.Info(LogMsgDeploymentChanged, "command", command, "shadow_id", shadowID, "area_id", areaID)
	return nil
}

func (s *service) HuntTick(ctx context.Context) (*domain.HuntResult, error) {
	var out *domain.HuntResult
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		out, err = s.state.HuntTick(now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("hunt tick failed: %w", err)
	}
	if out != nil {
		_, span := s.tracer.Start(ctx, "game.HuntTick")
		s.logHunt(ctx, span, *out)
		span.End()
	}
	return out, nil
}

func (s *service) AccrualTick(ctx context.Context) (domain.AccrualResult, error) {
	var out domain.AccrualResult
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		out, err = s.state.AccrualTick(now)
		return err
	})
	if err != nil {
		return out, fmt.Errorf("accrual tick failed: %w", err)
	}
	if out.PlayerLevelUp.LeveledUp() {
		logger.FromContext(ctx).Info(LogMsgPlayerLeveledUp, "old_level", out.PlayerLevelUp.OldLevel,
			"new_level", out.PlayerLevelUp.NewLevel, "source", event.SourceAccrual)
	}
	return out, nil
}

func (s *service) Checkpoint(ctx context.Context) {
	_ = s.exec(ctx, func(now time.Time) error {
		s.state.Checkpoint(now)
		return nil
	})
}

func (s *service) Reconcile(ctx context.Context) (domain.OfflineReport, error) {
	ctx, span := s.tracer.Start(ctx, "game.Reconcile")
	defer span.End()
	log := logger.FromContext(ctx)

	var report domain.OfflineReport
	err := s.exec(ctx, func(now time.Time) error {
		var err error
		report, err = s.state.Reconcile(now)
		return err
	})
	span.SetAttributes(
		attribute.Bool("applied", report.Applied),
		attribute.Int64("offline_ms", report.TimeOffline.Milliseconds()),
		attribute.Float64("exp_gained", report.ExpGained),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error(LogMsgReconcileFailed, "error", err)
		return report, err
	}
	if report.Applied {
		log.Info(LogMsgOfflineReconciled,
			"time_offline", report.TimeOffline.String(),
			"exp_gained", report.ExpGained,
			"player_levels_gained", report.PlayerLevelsGained,
			"areas_unlocked", report.AreasUnlocked,
			"hunts_completed", report.HuntsCompleted)
	}
	return report, nil
}

func (s *service) Snapshot(_ context.Context) *domain.Snapshot {
	var snap *domain.Snapshot
	s.read(func(now time.Time) { snap = s.state.Snapshot(now) })
	return snap
}

func (s *service) Restore(ctx context.Context, snap *domain.Snapshot) error {
	ctx, span := s.tracer.Start(ctx, "game.Restore")
	defer span.End()

	err := s.exec(ctx, func(now time.Time) error {
		return s.state.Restore(snap, now)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.FromContext(ctx).Warn(LogMsgCommandRejected, "command", "restore", "error", err)
	}
	return err
}

func (s *service) Save(ctx context.Context) error {
	if s.repo == nil {
		return ErrNoRepository
	}
	ctx, span := s.tracer.Start(ctx, "game.Save", trace.WithAttributes(attribute.String("slot", s.slot)))
	defer span.End()

	snap := s.Snapshot(ctx)
	err := s.repo.SaveSnapshot(ctx, s.slot, snap)
	metrics.RecordSnapshotSave(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.FromContext(ctx).Error(LogMsgSaveFailed, "slot", s.slot, "error", err)
		return fmt.Errorf("failed to save slot %s: %w", s.slot, err)
	}
	logger.FromContext(ctx).Debug(LogMsgSaved, "slot", s.slot)
	return nil
}

// Load restores the save slot and credits the time since it was written. An
// empty slot leaves the fresh game in place.
func (s *service) Load(ctx context.Context) (domain.OfflineReport, error) {
	if s.repo == nil {
		return domain.OfflineReport{}, ErrNoRepository
	}
	ctx, span := s.tracer.Start(ctx, "game.Load", trace.WithAttributes(attribute.String("slot", s.slot)))
	defer span.End()
	log := logger.FromContext(ctx)

	snap, err := s.repo.LoadSnapshot(ctx, s.slot)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		log.Info(LogMsgNewGame, "slot", s.slot)
		s.Checkpoint(ctx)
		return domain.OfflineReport{}, nil
	}
	if err != nil {
		span.RecordError(err)
		return domain.OfflineReport{}, fmt.Errorf("failed to load slot %s: %w", s.slot, err)
	}

	if err := s.Restore(ctx, snap); err != nil {
		return domain.OfflineReport{}, err
	}
	log.Info(LogMsgLoaded, "slot", s.slot, "saved_at", snap.SavedAt)
	return s.Reconcile(ctx)
}

func (s *service) ResetGame(ctx context.Context) error {
	_ = s.exec(ctx, func(now time.Time) error {
		s.state.Reset(now)
		return nil
	})
	logger.FromContext(ctx).Info(LogMsgGameReset, "slot", s.slot)
	if s.repo == nil {
		return nil
	}
	return s.Save(ctx)
}
