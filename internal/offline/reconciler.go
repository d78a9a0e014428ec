package offline

import (
	"fmt"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// DefaultMinElapsed is the shortest absence that earns offline progress
const DefaultMinElapsed = 60 * time.Second

// Config controls reconciliation policy
type Config struct {
	// MinElapsed is compared against the full offline duration; shorter gaps are ignored
	MinElapsed time.Duration
	// HuntCatchUp completes whole manual hunt cycles that elapsed while offline
	HuntCatchUp bool
}

// DefaultConfig ignores gaps under a minute and does not catch up manual hunts
func DefaultConfig() Config {
	return Config{MinElapsed: DefaultMinElapsed}
}

// Accruer runs passive accrual over an interval
type Accruer interface {
	Accrue(elapsedSeconds float64) (domain.AccrualResult, error)
}

// HuntCatcher completes manual hunt cycles in bulk
type HuntCatcher interface {
	Active() bool
	CatchUp(now time.Time) (domain.HuntResult, error)
}

// Reconciler applies the progress earned between the last checkpoint and now
// as one batch
type Reconciler struct {
	cfg     Config
	accruer Accruer
	hunts   HuntCatcher
}

// NewReconciler creates a reconciler
func NewReconciler(cfg Config, accruer Accruer, hunts HuntCatcher) *Reconciler {
	return &Reconciler{cfg: cfg, accruer: accruer, hunts: hunts}
}

// Config returns the reconciliation policy
func (r *Reconciler) Config() Config {
	return r.cfg
}

// Reconcile credits the absence since checkpoint and moves the checkpoint to now.
// The checkpoint moves even when nothing is credited, including when the clock
// went backwards.
func (r *Reconciler) Reconcile(checkpoint *domain.Checkpoint, now time.Time) (domain.OfflineReport, error) {
	offline := now.Sub(checkpoint.LastObserved)
	report := domain.OfflineReport{
		TimeOffline:    max(offline, 0),
		ShadowsLeveled: make(map[string]int),
	}
	defer func() { checkpoint.LastObserved = now }()

	if checkpoint.LastObserved.IsZero() || offline < r.cfg.MinElapsed {
		return report, nil
	}
	report.Applied = true

	accrued, err := r.accruer.Accrue(offline.Seconds())
	if err != nil {
		return report, fmt.Errorf("failed to accrue offline progress: %w", err)
	}
	report.ExpGained += accrued.PlayerExp
	report.PlayerLevelsGained += accrued.PlayerLevelUp.LevelsGained()
	for _, lvl := range accrued.ShadowLevelUps {
		report.ShadowsLeveled[lvl.ShadowID] += lvl.NewLevel - lvl.OldLevel
	}

	if r.cfg.HuntCatchUp && r.hunts != nil && r.hunts.Active() {
		hunt, err := r.hunts.CatchUp(now)
		if err != nil {
			return report, fmt.Errorf("failed to catch up hunting: %w", err)
		}
		report.HuntsCompleted = hunt.Cycles
		report.ExpGained += hunt.ExpGained
		report.PlayerLevelsGained += hunt.LevelUp.LevelsGained()
		report.ShadowsExtracted = hunt.ExtractedShadows
	}

	return report, nil
}
