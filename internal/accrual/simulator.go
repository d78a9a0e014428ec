package accrual

import (
	"fmt"
	"math"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// DefaultShadowExpShare is the fraction of a shadow's farmed exp it keeps for itself
const DefaultShadowExpShare = 0.1

// AreaSource resolves areas
type AreaSource interface {
	AreaByID(id string) (domain.Area, bool)
}

// DeploymentSource lists where shadows are deployed
type DeploymentSource interface {
	ActiveAreas() []string
	ShadowsInArea(areaID string) []string
}

// ShadowSource reads and levels shadows
type ShadowSource interface {
	Get(id string) (*domain.ShadowInstance, bool)
	GainExp(id string, amount float64) (domain.ShadowLevelResult, error)
}

// ExperienceSink receives the player's share
type ExperienceSink interface {
	GainExperience(amount float64) (domain.LevelUpResult, error)
}

// Simulator converts elapsed time into experience for every deployed shadow.
// The same closed form serves a one second tick and an hours-long catch-up.
type Simulator struct {
	areas       AreaSource
	deployments DeploymentSource
	shadows     ShadowSource
	player      ExperienceSink
	shadowShare float64
}

// NewSimulator creates a simulator. shadowShare is the fraction of each gain
// that also goes to the shadow that produced it.
func NewSimulator(areas AreaSource, deployments DeploymentSource, shadows ShadowSource, player ExperienceSink, shadowShare float64) *Simulator {
	return &Simulator{
		areas:       areas,
		deployments: deployments,
		shadows:     shadows,
		player:      player,
		shadowShare: shadowShare,
	}
}

type contribution struct {
	shadowID string
	gain     float64
}

// Accrue applies elapsedSeconds of passive farming. Every shadow earns at the
// multiplier it had when the interval began; level-ups during the interval only
// affect later intervals.
func (s *Simulator) Accrue(elapsedSeconds float64) (domain.AccrualResult, error) {
	if elapsedSeconds < 0 || math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) {
		return domain.AccrualResult{}, fmt.Errorf("%w: elapsed seconds %v", domain.ErrInvalidInput, elapsedSeconds)
	}

	result := domain.AccrualResult{
		ElapsedSeconds: elapsedSeconds,
		ShadowExp:      make(map[string]float64),
	}
	if elapsedSeconds == 0 {
		return result, nil
	}

	contributions := s.contributions(elapsedSeconds)
	if len(contributions) == 0 {
		return result, nil
	}

	for _, c := range contributions {
		result.PlayerExp += c.gain
	}
	levelUp, err := s.player.GainExperience(result.PlayerExp)
	if err != nil {
		return result, fmt.Errorf("failed to apply accrued experience: %w", err)
	}
	result.PlayerLevelUp = levelUp

	for _, c := range contributions {
		shadowGain := c.gain * s.shadowShare
		lvl, err := s.shadows.GainExp(c.shadowID, shadowGain)
		if err != nil {
			return result, fmt.Errorf("failed to apply shadow experience: %w", err)
		}
		result.ShadowExp[c.shadowID] = shadowGain
		if lvl.LeveledUp() {
			result.ShadowLevelUps = append(result.ShadowLevelUps, lvl)
		}
	}
	return result, nil
}

func (s *Simulator) contributions(elapsedSeconds float64) []contribution {
	var out []contribution
	for _, areaID := range s.deployments.ActiveAreas() {
		area, ok := s.areas.AreaByID(areaID)
		if !ok {
			continue
		}
		rate := area.BaseExpPerSecond()
		for _, id := range s.deployments.ShadowsInArea(areaID) {
			sh, ok := s.shadows.Get(id)
			if !ok {
				continue
			}
			out = append(out, contribution{
				shadowID: id,
				gain:     rate * sh.CurrentExpMultiplier * elapsedSeconds,
			})
		}
	}
	return out
}

// ExpPerSecond is the player exp rate of the current deployments
func (s *Simulator) ExpPerSecond() float64 {
	total := 0.0
	for _, c := range s.contributions(1) {
		total += c.gain
	}
	return total
}

// AreaExpPerSecond is the player exp rate produced in one area
func (s *Simulator) AreaExpPerSecond(areaID string) float64 {
	area, ok := s.areas.AreaByID(areaID)
	if !ok {
		return 0
	}
	rate := area.BaseExpPerSecond()
	total := 0.0
	for _, id := range s.deployments.ShadowsInArea(areaID) {
		if sh, ok := s.shadows.Get(id); ok {
			total += rate * sh.CurrentExpMultiplier
		}
	}
	return total
}
