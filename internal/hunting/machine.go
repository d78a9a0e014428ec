package hunting

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// AreaGate answers whether an area exists and whether the player may hunt there
type AreaGate interface {
	AreaByID(id string) (domain.Area, bool)
	IsAreaUnlocked(id string) bool
}

// ExperienceSink receives hunt rewards for the player
type ExperienceSink interface {
	GainExperience(amount float64) (domain.LevelUpResult, error)
}

// Extractor creates shadow instances from drop rolls
type Extractor interface {
	Extract(templateID string, now time.Time) (string, error)
}

// Roller draws one uniform sample in [0,100)
type Roller func() float64

// RandRoller draws samples from rng
func RandRoller(rng *rand.Rand) Roller {
	return func() float64 {
		return rng.Float64() * 100
	}
}

// NewSeededRoller returns a roller over a fresh source seeded with seed
func NewSeededRoller(seed int64) Roller {
	//nolint:gosec // G404: math/rand is acceptable for drop rolls
	return RandRoller(rand.New(rand.NewSource(seed)))
}

// Machine is the manual hunting state machine: idle, or hunting one area with a
// cycle that restarts on every completion. It is pure logic and not safe for
// concurrent use.
type Machine struct {
	areas   AreaGate
	player  ExperienceSink
	shadows Extractor
	roll    Roller
	session *domain.HuntingSession
}

// NewMachine creates an idle machine
func NewMachine(areas AreaGate, player ExperienceSink, shadows Extractor, roll Roller) *Machine {
	return &Machine{
		areas:   areas,
		player:  player,
		shadows: shadows,
		roll:    roll,
	}
}

// Start begins hunting areaID at now, replacing any session already running.
// The replaced session's partial cycle earns nothing.
func (m *Machine) Start(areaID string, now time.Time) error {
	if _, ok := m.areas.AreaByID(areaID); !ok {
		return domain.NotFoundf(domain.ErrAreaNotFound, areaID)
	}
	if !m.areas.IsAreaUnlocked(areaID) {
		return fmt.Errorf("%w: %q", domain.ErrAreaLocked, areaID)
	}
	m.session = &domain.HuntingSession{AreaID: areaID, CycleStart: now}
	return nil
}

// Stop ends the session. Stopping while idle does nothing.
func (m *Machine) Stop() {
	m.session = nil
}

// Session returns a copy of the active session
func (m *Machine) Session() (domain.HuntingSession, bool) {
	if m.session == nil {
		return domain.HuntingSession{}, false
	}
	return *m.session, true
}

// Active reports whether a session is running
func (m *Machine) Active() bool {
	return m.session != nil
}

// Due reports whether the current cycle has run its full duration. It never
// changes state; the caller decides when to Complete.
func (m *Machine) Due(now time.Time) bool {
	area, ok := m.currentArea()
	if !ok {
		return false
	}
	return now.Sub(m.session.CycleStart) >= area.HuntDuration()
}

// Complete finishes the current cycle: the area's reward goes to the player,
// each drop entry is rolled once, and a new cycle starts at now.
func (m *Machine) Complete(now time.Time) (domain.HuntResult, error) {
	area, ok := m.currentArea()
	if !ok {
		return domain.HuntResult{}, domain.ErrNoActiveSession
	}

	result, err := m.reward(area, 1, now)
	if err != nil {
		return result, err
	}

	m.session.CycleStart = now
	result.NextCycleStart = now
	return result, nil
}

// CatchUp completes every whole cycle that fit between the cycle start and now.
// Experience for all cycles is applied in one batch; drops are rolled per cycle.
// The cycle start advances by whole cycles, so a partial cycle carries over.
func (m *Machine) CatchUp(now time.Time) (domain.HuntResult, error) {
	area, ok := m.currentArea()
	if !ok {
		return domain.HuntResult{}, domain.ErrNoActiveSession
	}

	elapsed := now.Sub(m.session.CycleStart)
	cycles := int(elapsed / area.HuntDuration())
	if cycles <= 0 {
		return domain.HuntResult{AreaID: area.ID, NextCycleStart: m.session.CycleStart}, nil
	}

	result, err := m.reward(area, cycles, now)
	if err != nil {
		return result, err
	}

	m.session.CycleStart = m.session.CycleStart.Add(time.Duration(cycles) * area.HuntDuration())
	result.NextCycleStart = m.session.CycleStart
	return result, nil
}

func (m *Machine) reward(area domain.Area, cycles int, now time.Time) (domain.HuntResult, error) {
	result := domain.HuntResult{
		AreaID:    area.ID,
		Cycles:    cycles,
		ExpGained: area.BaseExpReward * float64(cycles),
	}

	levelUp, err := m.player.GainExperience(result.ExpGained)
	if err != nil {
		return result, fmt.Errorf("failed to apply hunt reward: %w", err)
	}
	result.LevelUp = levelUp

	for c := 0; c < cycles; c++ {
		for _, drop := range area.DropTable {
			if m.roll() >= drop.DropChancePercent {
				continue
			}
			id, err := m.shadows.Extract(drop.ShadowTemplateID, now)
			if err != nil {
				return result, fmt.Errorf("failed to extract %s: %w", drop.ShadowTemplateID, err)
			}
			result.ExtractedShadows = append(result.ExtractedShadows, id)
		}
	}
	return result, nil
}

// ProgressPercent is the share of the current cycle elapsed, 0 when idle
func (m *Machine) ProgressPercent(now time.Time) float64 {
	area, ok := m.currentArea()
	if !ok {
		return 0
	}
	elapsed := now.Sub(m.session.CycleStart)
	if elapsed <= 0 {
		return 0
	}
	return math.Min(100, 100*float64(elapsed)/float64(area.HuntDuration()))
}

// Remaining is the time left in the current cycle, 0 when idle
func (m *Machine) Remaining(now time.Time) time.Duration {
	area, ok := m.currentArea()
	if !ok {
		return 0
	}
	return max(0, area.HuntDuration()-now.Sub(m.session.CycleStart))
}

// Status bundles the session with its derived progress
func (m *Machine) Status(now time.Time) domain.HuntingStatus {
	if m.session == nil {
		return domain.HuntingStatus{}
	}
	return domain.HuntingStatus{
		Active:          true,
		AreaID:          m.session.AreaID,
		ProgressPercent: m.ProgressPercent(now),
		RemainingMs:     m.Remaining(now).Milliseconds(),
	}
}

// Restore installs a saved session. A session for an area that no longer exists
// is dropped.
func (m *Machine) Restore(session *domain.HuntingSession) {
	m.session = nil
	if session == nil {
		return
	}
	if _, ok := m.areas.AreaByID(session.AreaID); !ok {
		return
	}
	s := *session
	m.session = &s
}

func (m *Machine) currentArea() (domain.Area, bool) {
	if m.session == nil {
		return domain.Area{}, false
	}
	return m.areas.AreaByID(m.session.AreaID)
}
