package progression

import (
	"fmt"
	"math"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// Config holds the tunables of the player progression curve
type Config struct {
	Curve              Curve
	StatPointsPerLevel int
}

// DefaultConfig returns the standard progression tunables
func DefaultConfig() Config {
	return Config{
		Curve:              DefaultCurve(),
		StatPointsPerLevel: DefaultStatPointsPerLevel,
	}
}

// Engine owns experience and level math for the player. It is pure logic:
// no locking, no I/O, and it mutates only the PlayerProgress it is handed.
type Engine struct {
	cfg Config
}

// NewEngine creates a progression engine
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's tunables
func (e *Engine) Config() Config {
	return e.cfg
}

// NewPlayer returns a level 1 player with starting stats
func (e *Engine) NewPlayer(name string) *domain.PlayerProgress {
	if name == "" {
		name = DefaultPlayerName
	}
	return &domain.PlayerProgress{
		Name:      name,
		Level:     StartingLevel,
		ExpToNext: e.cfg.Curve.ExpToNext(StartingLevel),
		Stats: domain.PlayerStats{
			Strength:     StartingStatValue,
			Agility:      StartingStatValue,
			Intelligence: StartingStatValue,
			Vitality:     StartingStatValue,
			Sense:        StartingStatValue,
		},
	}
}

// ApplyExperience adds amount to the player and resolves every level-up it causes.
// The loop runs once per level gained; since thresholds grow geometrically that is
// logarithmic in amount, so large offline batches cost the same as a few ticks.
func (e *Engine) ApplyExperience(p *domain.PlayerProgress, amount float64) (domain.LevelUpResult, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.LevelUpResult{}, fmt.Errorf("%w: experience amount %v", domain.ErrInvalidInput, amount)
	}

	result := domain.LevelUpResult{
		ExpApplied: amount,
		OldLevel:   p.Level,
	}

	p.CurrentExp += amount
	p.TotalExpEarned += amount

	for p.CurrentExp >= p.ExpToNext {
		p.CurrentExp -= p.ExpToNext
		p.Level++
		p.AvailableStatPoints += e.cfg.StatPointsPerLevel
		result.StatPointsGained += e.cfg.StatPointsPerLevel
		p.ExpToNext = e.cfg.Curve.ExpToNext(p.Level)
	}

	result.NewLevel = p.Level
	return result, nil
}

// AllocateStatPoint moves one available point into the named stat. With no points
// available it does nothing and reports false; that is not an error.
func (e *Engine) AllocateStatPoint(p *domain.PlayerProgress, stat domain.StatName) (bool, error) {
	ref := p.Stats.Ref(stat)
	if ref == nil {
		return false, domain.NotFoundf(domain.ErrStatNotFound, string(stat))
	}
	if p.AvailableStatPoints <= 0 {
		return false, nil
	}
	p.AvailableStatPoints--
	*ref++
	return true, nil
}

// Normalize repairs derived fields after a load: ExpToNext is recomputed from the
// level and any exp already past the threshold is resolved.
func (e *Engine) Normalize(p *domain.PlayerProgress) domain.LevelUpResult {
	if p.Level < StartingLevel {
		p.Level = StartingLevel
	}
	if p.CurrentExp < 0 || math.IsNaN(p.CurrentExp) {
		p.CurrentExp = 0
	}
	if p.AvailableStatPoints < 0 {
		p.AvailableStatPoints = 0
	}
	p.ExpToNext = e.cfg.Curve.ExpToNext(p.Level)
	result, _ := e.ApplyExperience(p, 0)
	return result
}

// TotalStatPointsGranted is the number of points a player at level has received
func (e *Engine) TotalStatPointsGranted(level int) int {
	return e.cfg.StatPointsPerLevel * (level - StartingLevel)
}

// ExpPercentage is progress toward the next level, capped at 100
func ExpPercentage(p *domain.PlayerProgress) float64 {
	if p.ExpToNext <= 0 {
		return 0
	}
	return math.Min(p.CurrentExp/p.ExpToNext*100, 100)
}

// CanLevelUp reports whether the player holds enough exp for another level
func CanLevelUp(p *domain.PlayerProgress) bool {
	return p.CurrentExp >= p.ExpToNext
}
