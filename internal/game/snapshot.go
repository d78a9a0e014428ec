package game

import (
	"fmt"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/metrics"
)

// Snapshot captures the game for persistence
func (s *State) Snapshot(now time.Time) *domain.Snapshot {
	player := *s.player
	stats := s.stats
	snap := &domain.Snapshot{
		Version:       domain.SnapshotVersionCurrent,
		Player:        &player,
		Shadows:       s.shadows.Export(),
		Deployments:   s.deployments.Index(),
		UnlockedAreas: s.unlockedIDs(),
		Checkpoint:    s.checkpoint,
		Statistics:    &stats,
		GameStartTime: s.gameStart,
		SavedAt:       now,
	}
	if sess, ok := s.hunting.Session(); ok {
		snap.Hunting = &sess
	}
	return snap
}

// Restore replaces the game with a saved one. On error the game is left as it
// was before the call.
func (s *State) Restore(snap *domain.Snapshot, now time.Time) error {
	migrated, err := Migrate(snap)
	if err != nil {
		return err
	}

	backup := s.Snapshot(now)
	if err := s.restore(migrated, now); err != nil {
		if rerr := s.restore(backup, now); rerr != nil {
			panic(fmt.Sprintf("failed to roll back snapshot restore: %v", rerr))
		}
		return err
	}
	return nil
}

// Migrate upgrades an older snapshot to the current version. Fields that did
// not exist yet get defaults; a snapshot from a newer build is rejected.
func Migrate(snap *domain.Snapshot) (*domain.Snapshot, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: empty snapshot", domain.ErrCorruptSnapshot)
	}
	if snap.Version > domain.SnapshotVersionCurrent {
		return nil, fmt.Errorf("%w: version %d, newest supported is %d",
			domain.ErrUnsupportedSnapshot, snap.Version, domain.SnapshotVersionCurrent)
	}
	if snap.Version < domain.SnapshotVersionInitial {
		return nil, fmt.Errorf("%w: version %d", domain.ErrCorruptSnapshot, snap.Version)
	}
	if snap.Player == nil {
		return nil, fmt.Errorf("%w: missing player", domain.ErrCorruptSnapshot)
	}

	out := *snap
	if out.Version == domain.SnapshotVersionInitial {
		out.Hunting = nil
		out.Statistics = &domain.Statistics{TotalShadowsExtracted: len(out.Shadows)}
		out.Version = domain.SnapshotVersionCurrent
	}
	if out.Statistics == nil {
		out.Statistics = &domain.Statistics{}
	}
	return &out, nil
}

func (s *State) restore(snap *domain.Snapshot, now time.Time) error {
	player := *snap.Player
	s.engine.Normalize(&player)

	if err := s.shadows.Restore(snap.Shadows); err != nil {
		return err
	}
	if snap.Deployments == nil {
		s.deployments.Rebuild()
	} else if err := s.deployments.Load(snap.Deployments); err != nil {
		return err
	}

	s.player = &player
	s.unlocked = make(map[string]struct{})
	for _, id := range snap.UnlockedAreas {
		if _, ok := s.catalog.AreaByID(id); ok {
			s.unlocked[id] = struct{}{}
		}
	}
	for _, id := range s.catalog.AreaIDsUnlockedAt(player.Level) {
		s.unlocked[id] = struct{}{}
	}

	s.hunting.Restore(snap.Hunting)
	if sess, ok := s.hunting.Session(); ok && !s.IsAreaUnlocked(sess.AreaID) {
		s.hunting.Stop()
	}

	s.checkpoint = snap.Checkpoint
	s.stats = *snap.Statistics
	s.gameStart = snap.GameStartTime
	if s.gameStart.IsZero() {
		s.gameStart = now
	}
	s.lastAccrual = now
	s.events = nil
	metrics.ShadowsDeployed.Set(float64(s.deployments.DeployedCount()))
	return nil
}
