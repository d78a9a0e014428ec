package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
)

func TestNewState_StartsFresh(t *testing.T) {
	s := newTestState(t, DefaultConfig())

	p := s.Player()
	assert.Equal(t, 1, p.Level)
	assert.InDelta(t, 100.0, p.ExpToNext, 1e-9)
	assert.Equal(t, 10, p.Stats.Strength)
	assert.True(t, s.IsAreaUnlocked("field"))
	assert.False(t, s.IsAreaUnlocked("cave"))
	assert.Equal(t, t0, s.LastCheckpoint().LastObserved)
	assert.Empty(t, s.Shadows())
	assert.False(t, s.HuntingStatus(t0).Active)
}

func TestApplyExperience_UnlocksAreas(t *testing.T) {
	s := newTestState(t, DefaultConfig())

	out, err := s.ApplyExperience(250, t0)
	require.NoError(t, err)

	assert.Equal(t, 1, out.OldLevel)
	assert.Equal(t, 3, out.NewLevel)
	assert.Equal(t, 10, out.StatPointsGained)
	assert.Equal(t, []string{"cave"}, out.AreasUnlocked)

	p := s.Player()
	assert.InDelta(t, 0.0, p.CurrentExp, 1e-9)
	assert.InDelta(t, 225.0, p.ExpToNext, 1e-9)
	assert.True(t, s.IsAreaUnlocked("cave"))

	assert.Equal(t, []event.Type{event.PlayerLevelUp, event.AreaUnlocked}, eventTypes(s.Drain()))
	assert.Empty(t, s.Drain())
}

func TestApplyExperience_RejectsNegative(t *testing.T) {
	s := newTestState(t, DefaultConfig())

	_, err := s.ApplyExperience(-1, t0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, s.Player().Level)
	assert.Empty(t, s.Drain())
}

func TestAllocateStatPoint(t *testing.T) {
	s := newTestState(t, DefaultConfig())

	spent, err := s.AllocateStatPoint(domain.StatAgility)
	require.NoError(t, err)
	assert.False(t, spent)

	_, err = s.ApplyExperience(100, t0)
	require.NoError(t, err)

	spent, err = s.AllocateStatPoint(domain.StatAgility)
	require.NoError(t, err)
	assert.True(t, spent)
	assert.Equal(t, 11, s.Player().Stats.Agility)
	assert.Equal(t, 4, s.Player().AvailableStatPoints)

	_, err = s.AllocateStatPoint("charisma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHuntTick_CompletesWhenDue(t *testing.T) {
	s := newTestState(t, DefaultConfig(), 10)
	require.NoError(t, s.StartHunting("field", t0))

	result, err := s.HuntTick(t0.Add(1999 * time.Millisecond))
	require.NoError(t, err)
	assert.Nil(t, result)

	done := t0.Add(2000 * time.Millisecond)
	result, err = s.HuntTick(done)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "field", result.AreaID)
	assert.InDelta(t, 10.0, result.ExpGained, 1e-9)
	assert.Equal(t, []string{"shadow-1"}, result.ExtractedShadows)
	assert.Equal(t, done, result.NextCycleStart)

	assert.InDelta(t, 10.0, s.Player().CurrentExp, 1e-9)
	stats := s.HunterStats()
	assert.Equal(t, 1, stats.TotalHunts)
	assert.Equal(t, 1, stats.TotalShadowsExtracted)
	assert.Equal(t, int64(2000), stats.TimeSpentHuntingMs)

	assert.Equal(t, []event.Type{event.ShadowExtracted, event.HuntCompleted}, eventTypes(s.Drain()))

	status := s.HuntingStatus(done.Add(500 * time.Millisecond))
	assert.True(t, status.Active)
	assert.InDelta(t, 25.0, status.ProgressPercent, 1e-9)
	assert.Equal(t, int64(1500), status.RemainingMs)
}

func TestCompleteHunt_Idle(t *testing.T) {
	s := newTestState(t, DefaultConfig())

	_, err := s.CompleteHunt(t0)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestLockedAreas(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	id, err := s.ExtractShadow("slime", t0)
	require.NoError(t, err)

	assert.ErrorIs(t, s.StartHunting("cave", t0), domain.ErrAreaLocked)
	assert.ErrorIs(t, s.Deploy(id, "cave"), domain.ErrAreaLocked)
	assert.ErrorIs(t, s.StartHunting("moon", t0), domain.ErrNotFound)
	assert.False(t, s.HuntingStatus(t0).Active)
}

func TestHuntLevelUpOpensArea(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	_, err := s.ApplyExperience(245, t0)
	require.NoError(t, err)
	s.Drain()

	require.NoError(t, s.StartHunting("field", t0))
	result, err := s.CompleteHunt(t0.Add(time.Second))
	require.NoError(t, err)

	assert.Equal(t, 3, result.LevelUp.NewLevel)
	assert.True(t, s.IsAreaUnlocked("cave"))
	assert.Equal(t,
		[]event.Type{event.PlayerLevelUp, event.AreaUnlocked, event.HuntCompleted},
		eventTypes(s.Drain()))
}

func TestAccrualTick_UsesRealElapsedTime(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	id, err := s.ExtractShadow("slime", t0)
	require.NoError(t, err)
	require.NoError(t, s.Deploy(id, "field"))

	result, err := s.AccrualTick(t0.Add(10 * time.Second))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, result.PlayerExp, 1e-9)
	assert.InDelta(t, 5.0, result.ShadowExp[id], 1e-9)

	// a tick at the same instant credits nothing
	result, err = s.AccrualTick(t0.Add(10 * time.Second))
	require.NoError(t, err)
	assert.Zero(t, result.PlayerExp)

	result, err = s.AccrualTick(t0.Add(11500 * time.Millisecond))
	require.NoError(t, err)
	assert.InDelta(t, 7.5, result.PlayerExp, 1e-9)

	assert.InDelta(t, 57.5, s.Player().TotalExpEarned, 1e-9)
}

func TestDeployRecall_UpdatesStats(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	_, err := s.ApplyExperience(250, t0)
	require.NoError(t, err)

	slime, err := s.ExtractShadow("slime", t0)
	require.NoError(t, err)
	bat, err := s.ExtractShadow("bat", t0.Add(time.Second))
	require.NoError(t, err)

	require.NoError(t, s.Deploy(slime, "field"))
	require.NoError(t, s.Deploy(bat, "cave"))
	assert.ErrorIs(t, s.Deploy(bat, "field"), domain.ErrAlreadyDeployed)

	army := s.ArmyStats()
	assert.Equal(t, 2, army.TotalShadows)
	assert.Equal(t, 2, army.DeployedShadows)
	assert.InDelta(t, 5.0+25.0/3*2, army.TotalExpPerSecond, 1e-9)
	assert.Equal(t, map[domain.Rarity]int{domain.RarityCommon: 1, domain.RarityRare: 1}, army.ShadowsByRarity)
	assert.InDelta(t, 1.0, army.AverageLevel, 1e-9)

	require.NoError(t, s.Reassign(bat, "field"))
	assert.Equal(t, map[string][]string{"field": {slime, bat}}, s.Deployments())

	require.NoError(t, s.Recall(slime))
	assert.ErrorIs(t, s.Recall(slime), domain.ErrNotDeployed)
	assert.Equal(t, 1, s.ArmyStats().DeployedShadows)

	view, err := s.Shadow(bat)
	require.NoError(t, err)
	assert.Equal(t, "Bat", view.Name)
	assert.Equal(t, domain.RarityRare, view.Rarity)
	assert.InDelta(t, 10.0, view.ExpPerSecond, 1e-9)

	_, err = s.Shadow("ghost")
	assert.ErrorIs(t, err, domain.ErrShadowNotFound)

	s.Verify()
}

func TestGainShadowExp_EmitsLevelUp(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	id, err := s.ExtractShadow("bat", t0)
	require.NoError(t, err)
	s.Drain()

	result, err := s.GainShadowExp(id, 260, t0)
	require.NoError(t, err)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, []event.Type{event.ShadowLevelUp}, eventTypes(s.Drain()))

	view, _ := s.Shadow(id)
	assert.InDelta(t, 2.0*1.2, view.CurrentExpMultiplier, 1e-9)

	_, err = s.GainShadowExp("ghost", 1, t0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcile_BelowThresholdIsNoOp(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	id, _ := s.ExtractShadow("slime", t0)
	require.NoError(t, s.Deploy(id, "field"))
	s.Drain()

	now := t0.Add(3700 * time.Millisecond)
	report, err := s.Reconcile(now)
	require.NoError(t, err)

	assert.False(t, report.Applied)
	assert.Zero(t, report.ExpGained)
	assert.Zero(t, s.Player().TotalExpEarned)
	assert.Equal(t, now, s.LastCheckpoint().LastObserved)
	assert.Empty(t, s.Drain())
}

func TestReconcile_BelowThresholdKeepsHuntCycle(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	require.NoError(t, s.StartHunting("field", t0))
	s.Drain()

	now := t0.Add(1500 * time.Millisecond)
	before := s.HuntingStatus(now)
	report, err := s.Reconcile(now)
	require.NoError(t, err)

	assert.False(t, report.Applied)
	after := s.HuntingStatus(now)
	assert.True(t, after.Active)
	assert.Equal(t, "field", after.AreaID)
	assert.Equal(t, int64(500), after.RemainingMs)
	assert.Equal(t, before, after)
}

func TestReconcile_AppliesOneBatch(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	id, _ := s.ExtractShadow("slime", t0)
	require.NoError(t, s.Deploy(id, "field"))
	s.Drain()

	now := t0.Add(2 * time.Hour)
	report, err := s.Reconcile(now)
	require.NoError(t, err)

	assert.True(t, report.Applied)
	assert.Equal(t, 2*time.Hour, report.TimeOffline)
	assert.InDelta(t, 36000.0, report.ExpGained, 1e-6)
	assert.Equal(t, 12, report.PlayerLevelsGained)
	assert.Equal(t, 13, s.Player().Level)
	assert.Equal(t, []string{"cave", "tower"}, report.AreasUnlocked)
	assert.Equal(t, 7, report.ShadowsLeveled[id])
	assert.Equal(t, now, s.LastCheckpoint().LastObserved)

	types := eventTypes(s.Drain())
	assert.Equal(t, event.OfflineReconciled, types[len(types)-1])
	assert.Contains(t, types, event.ShadowLevelUp)
	assert.Contains(t, types, event.AreaUnlocked)

	// the next accrual tick starts from the reconcile, not from the game start
	tick, err := s.AccrualTick(now.Add(time.Second))
	require.NoError(t, err)
	assert.InDelta(t, 5.0*1.7, tick.PlayerExp, 1e-9)
}

func TestReconcile_HuntPolicy(t *testing.T) {
	t.Run("without catch-up the cycle restarts", func(t *testing.T) {
		s := newTestState(t, DefaultConfig())
		require.NoError(t, s.StartHunting("field", t0))

		now := t0.Add(61 * time.Second)
		report, err := s.Reconcile(now)
		require.NoError(t, err)

		assert.True(t, report.Applied)
		assert.Zero(t, report.HuntsCompleted)
		assert.Zero(t, s.Player().TotalExpEarned)

		status := s.HuntingStatus(now)
		assert.True(t, status.Active)
		assert.Equal(t, int64(2000), status.RemainingMs)
	})

	t.Run("with catch-up whole cycles are credited", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Offline.HuntCatchUp = true
		s := newTestState(t, cfg)
		require.NoError(t, s.StartHunting("field", t0))

		now := t0.Add(61 * time.Second)
		report, err := s.Reconcile(now)
		require.NoError(t, err)

		assert.Equal(t, 30, report.HuntsCompleted)
		assert.InDelta(t, 300.0, report.ExpGained, 1e-9)
		assert.Equal(t, 30, s.HunterStats().TotalHunts)
		assert.Equal(t, int64(60000), s.HunterStats().TimeSpentHuntingMs)
		assert.Equal(t, int64(1000), s.HuntingStatus(now).RemainingMs)
		assert.Contains(t, eventTypes(s.Drain()), event.HuntCompleted)
	})
}

func TestReset(t *testing.T) {
	s := newTestState(t, DefaultConfig())
	_, _ = s.ApplyExperience(1000, t0)
	id, _ := s.ExtractShadow("slime", t0)
	require.NoError(t, s.Deploy(id, "field"))
	require.NoError(t, s.StartHunting("cave", t0))

	later := t0.Add(time.Hour)
	s.Reset(later)

	assert.Equal(t, 1, s.Player().Level)
	assert.Empty(t, s.Shadows())
	assert.Empty(t, s.Deployments())
	assert.False(t, s.HuntingStatus(later).Active)
	assert.False(t, s.IsAreaUnlocked("cave"))
	assert.Equal(t, later, s.LastCheckpoint().LastObserved)
	assert.Zero(t, s.HunterStats().TotalShadowsExtracted)
}
