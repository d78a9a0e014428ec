package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig())
}

func TestCurve_ExpToNext(t *testing.T) {
	c := DefaultCurve()

	tests := []struct {
		level    int
		expected float64
	}{
		{level: 0, expected: 100},
		{level: 1, expected: 100},
		{level: 2, expected: 150},
		{level: 3, expected: 225},
		{level: 4, expected: 337},
		{level: 5, expected: 506},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, c.ExpToNext(tt.level), "level %d", tt.level)
	}
	assert.Equal(t, 250.0, c.CumulativeExp(3))
}

func TestApplyExperience_MultiLevelScenario(t *testing.T) {
	e := newTestEngine()
	p := e.NewPlayer("")

	result, err := e.ApplyExperience(p, 250)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 0.0, p.CurrentExp)
	assert.Equal(t, 225.0, p.ExpToNext)
	assert.Equal(t, 10, p.AvailableStatPoints)
	assert.Equal(t, 250.0, p.TotalExpEarned)

	assert.Equal(t, 1, result.OldLevel)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, 2, result.LevelsGained())
	assert.Equal(t, 10, result.StatPointsGained)
	assert.True(t, result.LeveledUp())
}

func TestApplyExperience_ChunkingInvariance(t *testing.T) {
	chunkings := [][]float64{
		{1000},
		{500, 500},
		{1, 99, 900},
		{250, 250, 250, 250},
		{999, 1},
	}

	e := newTestEngine()
	reference := e.NewPlayer("")
	_, err := e.ApplyExperience(reference, 1000)
	require.NoError(t, err)

	for _, chunks := range chunkings {
		p := e.NewPlayer("")
		for _, c := range chunks {
			_, err := e.ApplyExperience(p, c)
			require.NoError(t, err)
		}
		assert.Equal(t, reference.Level, p.Level, "chunks %v", chunks)
		assert.Equal(t, reference.CurrentExp, p.CurrentExp, "chunks %v", chunks)
		assert.Equal(t, reference.AvailableStatPoints, p.AvailableStatPoints, "chunks %v", chunks)
		assert.Equal(t, reference.TotalExpEarned, p.TotalExpEarned, "chunks %v", chunks)
	}
}

func TestApplyExperience_InvariantAfterEveryCall(t *testing.T) {
	e := newTestEngine()
	p := e.NewPlayer("")

	lastLevel := p.Level
	lastTotal := p.TotalExpEarned
	for i := 0; i < 200; i++ {
		_, err := e.ApplyExperience(p, float64(i*37%311))
		require.NoError(t, err)

		assert.Less(t, p.CurrentExp, p.ExpToNext)
		assert.GreaterOrEqual(t, p.Level, lastLevel)
		assert.GreaterOrEqual(t, p.TotalExpEarned, lastTotal)
		assert.Equal(t, e.TotalStatPointsGranted(p.Level), p.AvailableStatPoints)
		lastLevel, lastTotal = p.Level, p.TotalExpEarned
	}
}

func TestApplyExperience_LargeBatchIsBounded(t *testing.T) {
	e := newTestEngine()
	p := e.NewPlayer("")

	_, err := e.ApplyExperience(p, 1e15)
	require.NoError(t, err)

	assert.Greater(t, p.Level, 60)
	assert.Less(t, p.Level, 100)
	assert.Less(t, p.CurrentExp, p.ExpToNext)
}

func TestApplyExperience_RejectsInvalidAmounts(t *testing.T) {
	e := newTestEngine()
	p := e.NewPlayer("")

	_, err := e.ApplyExperience(p, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0.0, p.TotalExpEarned)
}

func TestApplyExperience_ZeroIsNoOp(t *testing.T) {
	e := newTestEngine()
	p := e.NewPlayer("")

	result, err := e.ApplyExperience(p, 0)
	require.NoError(t, err)
	assert.False(t, result.LeveledUp())
	assert.Equal(t, 1, p.Level)
}

func TestAllocateStatPoint(t *testing.T) {
	e := newTestEngine()
	p := e.NewPlayer("")

	t.Run("no points is a silent no-op", func(t *testing.T) {
		ok, err := e.AllocateStatPoint(p, domain.StatStrength)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, StartingStatValue, p.Stats.Strength)
		assert.Equal(t, 0, p.AvailableStatPoints)
	})

	t.Run("spends points one at a time", func(t *testing.T) {
		_, err := e.ApplyExperience(p, 100)
		require.NoError(t, err)
		require.Equal(t, 5, p.AvailableStatPoints)

		for i := 0; i < 7; i++ {
			_, err := e.AllocateStatPoint(p, domain.StatSense)
			require.NoError(t, err)
		}
		assert.Equal(t, 0, p.AvailableStatPoints)
		assert.Equal(t, StartingStatValue+5, p.Stats.Sense)
	})

	t.Run("unknown stat", func(t *testing.T) {
		_, err := e.AllocateStatPoint(p, domain.StatName("luck"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNormalize(t *testing.T) {
	e := newTestEngine()
	p := &domain.PlayerProgress{Level: 0, CurrentExp: 120}

	result := e.Normalize(p)

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 20.0, p.CurrentExp)
	assert.Equal(t, 150.0, p.ExpToNext)
	assert.Equal(t, 1, result.LevelsGained())
}

func TestExpPercentage(t *testing.T) {
	p := &domain.PlayerProgress{CurrentExp: 50, ExpToNext: 200}
	assert.Equal(t, 25.0, ExpPercentage(p))
	assert.False(t, CanLevelUp(p))

	p.CurrentExp = 400
	assert.Equal(t, 100.0, ExpPercentage(p))
	assert.True(t, CanLevelUp(p))
}
