package offline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

type mockAccruer struct {
	mock.Mock
}

func (m *mockAccruer) Accrue(elapsedSeconds float64) (domain.AccrualResult, error) {
	args := m.Called(elapsedSeconds)
	return args.Get(0).(domain.AccrualResult), args.Error(1)
}

type mockHunts struct {
	mock.Mock
}

func (m *mockHunts) Active() bool {
	return m.Called().Bool(0)
}

func (m *mockHunts) CatchUp(now time.Time) (domain.HuntResult, error) {
	args := m.Called(now)
	return args.Get(0).(domain.HuntResult), args.Error(1)
}

var t0 = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func TestReconcile_BelowThresholdIsNoOp(t *testing.T) {
	accruer := &mockAccruer{}
	r := NewReconciler(DefaultConfig(), accruer, nil)
	cp := &domain.Checkpoint{LastObserved: t0}
	now := t0.Add(3700 * time.Millisecond)

	report, err := r.Reconcile(cp, now)
	require.NoError(t, err)

	assert.False(t, report.Applied)
	assert.Equal(t, 3700*time.Millisecond, report.TimeOffline)
	assert.Equal(t, now, cp.LastObserved)
	accruer.AssertNotCalled(t, "Accrue", mock.Anything)
}

func TestReconcile_AppliesOneBatch(t *testing.T) {
	accruer := &mockAccruer{}
	accruer.On("Accrue", 7200.0).Return(domain.AccrualResult{
		ElapsedSeconds: 7200,
		PlayerExp:      36000,
		PlayerLevelUp:  domain.LevelUpResult{OldLevel: 3, NewLevel: 12},
		ShadowLevelUps: []domain.ShadowLevelResult{
			{ShadowID: "a", OldLevel: 1, NewLevel: 4},
			{ShadowID: "b", OldLevel: 2, NewLevel: 3},
		},
	}, nil).Once()

	r := NewReconciler(DefaultConfig(), accruer, nil)
	cp := &domain.Checkpoint{LastObserved: t0}
	now := t0.Add(2 * time.Hour)

	report, err := r.Reconcile(cp, now)
	require.NoError(t, err)

	assert.True(t, report.Applied)
	assert.Equal(t, 2*time.Hour, report.TimeOffline)
	assert.Equal(t, 36000.0, report.ExpGained)
	assert.Equal(t, 9, report.PlayerLevelsGained)
	assert.Equal(t, map[string]int{"a": 3, "b": 1}, report.ShadowsLeveled)
	assert.Equal(t, now, cp.LastObserved)
	accruer.AssertExpectations(t)
}

func TestReconcile_ExactThresholdApplies(t *testing.T) {
	accruer := &mockAccruer{}
	accruer.On("Accrue", 60.0).Return(domain.AccrualResult{}, nil).Once()

	r := NewReconciler(DefaultConfig(), accruer, nil)
	report, err := r.Reconcile(&domain.Checkpoint{LastObserved: t0}, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, report.Applied)
	accruer.AssertExpectations(t)
}

func TestReconcile_ClockWentBackwards(t *testing.T) {
	accruer := &mockAccruer{}
	r := NewReconciler(DefaultConfig(), accruer, nil)
	cp := &domain.Checkpoint{LastObserved: t0}

	report, err := r.Reconcile(cp, t0.Add(-time.Hour))
	require.NoError(t, err)

	assert.False(t, report.Applied)
	assert.Equal(t, time.Duration(0), report.TimeOffline)
	assert.Equal(t, t0.Add(-time.Hour), cp.LastObserved)
}

func TestReconcile_FreshCheckpoint(t *testing.T) {
	accruer := &mockAccruer{}
	r := NewReconciler(DefaultConfig(), accruer, nil)
	cp := &domain.Checkpoint{}

	report, err := r.Reconcile(cp, t0)
	require.NoError(t, err)
	assert.False(t, report.Applied)
	assert.Equal(t, t0, cp.LastObserved)
}

func TestReconcile_HuntCatchUpPolicy(t *testing.T) {
	now := t0.Add(10 * time.Minute)

	t.Run("disabled by default", func(t *testing.T) {
		accruer := &mockAccruer{}
		accruer.On("Accrue", 600.0).Return(domain.AccrualResult{}, nil)
		hunts := &mockHunts{}

		r := NewReconciler(DefaultConfig(), accruer, hunts)
		report, err := r.Reconcile(&domain.Checkpoint{LastObserved: t0}, now)
		require.NoError(t, err)

		assert.Equal(t, 0, report.HuntsCompleted)
		hunts.AssertNotCalled(t, "CatchUp", mock.Anything)
	})

	t.Run("enabled with active session", func(t *testing.T) {
		accruer := &mockAccruer{}
		accruer.On("Accrue", 600.0).Return(domain.AccrualResult{PlayerExp: 100}, nil)
		hunts := &mockHunts{}
		hunts.On("Active").Return(true)
		hunts.On("CatchUp", now).Return(domain.HuntResult{
			AreaID:           "goblin-cave",
			Cycles:           200,
			ExpGained:        2000,
			LevelUp:          domain.LevelUpResult{OldLevel: 5, NewLevel: 7},
			ExtractedShadows: []string{"x", "y"},
		}, nil)

		r := NewReconciler(Config{MinElapsed: DefaultMinElapsed, HuntCatchUp: true}, accruer, hunts)
		report, err := r.Reconcile(&domain.Checkpoint{LastObserved: t0}, now)
		require.NoError(t, err)

		assert.Equal(t, 200, report.HuntsCompleted)
		assert.Equal(t, 2100.0, report.ExpGained)
		assert.Equal(t, 2, report.PlayerLevelsGained)
		assert.Equal(t, []string{"x", "y"}, report.ShadowsExtracted)
		hunts.AssertExpectations(t)
	})

	t.Run("enabled without session", func(t *testing.T) {
		accruer := &mockAccruer{}
		accruer.On("Accrue", 600.0).Return(domain.AccrualResult{}, nil)
		hunts := &mockHunts{}
		hunts.On("Active").Return(false)

		r := NewReconciler(Config{MinElapsed: DefaultMinElapsed, HuntCatchUp: true}, accruer, hunts)
		_, err := r.Reconcile(&domain.Checkpoint{LastObserved: t0}, now)
		require.NoError(t, err)
		hunts.AssertNotCalled(t, "CatchUp", mock.Anything)
	})
}

func TestReconcile_AccrualErrorStillMovesCheckpoint(t *testing.T) {
	accruer := &mockAccruer{}
	accruer.On("Accrue", mock.Anything).Return(domain.AccrualResult{}, errors.New("boom"))

	r := NewReconciler(DefaultConfig(), accruer, nil)
	cp := &domain.Checkpoint{LastObserved: t0}
	now := t0.Add(time.Hour)

	_, err := r.Reconcile(cp, now)
	assert.Error(t, err)
	assert.Equal(t, now, cp.LastObserved)
}
