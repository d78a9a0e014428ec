package shadow

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

type stubTemplates map[string]domain.ShadowTemplate

func (s stubTemplates) ShadowTemplateByID(id string) (domain.ShadowTemplate, bool) {
	t, ok := s[id]
	return t, ok
}

func testTemplates() stubTemplates {
	return stubTemplates{
		"goblin-shadow": {ID: "goblin-shadow", Name: "Goblin Shadow", Rarity: domain.RarityCommon, BaseExpMultiplier: 0.5, MaxLevel: 20, SourceAreaID: "goblin-cave"},
		"tiny-shadow":   {ID: "tiny-shadow", Name: "Tiny Shadow", Rarity: domain.RarityCommon, BaseExpMultiplier: 1.0, MaxLevel: 3, SourceAreaID: "goblin-cave"},
	}
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("shadow-%d", n)
	})
}

func newTestRegistry() *Registry {
	return NewRegistry(testTemplates(), DefaultConfig(), sequentialIDs())
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestExtract(t *testing.T) {
	r := newTestRegistry()

	id, err := r.Extract("goblin-shadow", t0)
	require.NoError(t, err)
	assert.Equal(t, "shadow-1", id)

	s, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, "goblin-shadow", s.TemplateID)
	assert.NotEqual(t, s.TemplateID, s.ID)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0.0, s.CurrentExp)
	assert.Equal(t, 100.0, s.ExpToNext)
	assert.Equal(t, 0.5, s.CurrentExpMultiplier)
	assert.False(t, s.IsDeployed())
	assert.Equal(t, t0, s.ExtractedAt)
}

func TestExtract_DuplicatesGetDistinctIDs(t *testing.T) {
	r := NewRegistry(testTemplates(), DefaultConfig())

	a, err := r.Extract("goblin-shadow", t0)
	require.NoError(t, err)
	b, err := r.Extract("goblin-shadow", t0)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, r.Len())
}

func TestExtract_UnknownTemplate(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Extract("dragon", t0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestGainExp_LevelsAndMultiplier(t *testing.T) {
	r := newTestRegistry()
	id, _ := r.Extract("goblin-shadow", t0)

	result, err := r.GainExp(id, 260)
	require.NoError(t, err)

	s, _ := r.Get(id)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 10.0, s.CurrentExp)
	assert.Equal(t, 225.0, s.ExpToNext)
	assert.InDelta(t, 0.5*1.2, s.CurrentExpMultiplier, 1e-9)
	assert.Equal(t, 1, result.OldLevel)
	assert.Equal(t, 3, result.NewLevel)
	assert.True(t, result.LeveledUp())
}

func TestGainExp_CappedAtMaxLevel(t *testing.T) {
	r := newTestRegistry()
	id, _ := r.Extract("tiny-shadow", t0)

	result, err := r.GainExp(id, 1000)
	require.NoError(t, err)

	s, _ := r.Get(id)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 0.0, s.CurrentExp)
	assert.Equal(t, 750.0, result.ExpDiscarded)
	assert.InDelta(t, 1.2, s.CurrentExpMultiplier, 1e-9)

	result, err = r.GainExp(id, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 0.0, s.CurrentExp)
	assert.Equal(t, 50.0, result.ExpDiscarded)
	assert.False(t, result.LeveledUp())
}

func TestGainExp_Errors(t *testing.T) {
	r := newTestRegistry()
	id, _ := r.Extract("goblin-shadow", t0)

	_, err := r.GainExp("missing", 10)
	assert.ErrorIs(t, err, domain.ErrShadowNotFound)

	_, err = r.GainExp(id, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGainExp_LevelNeverExceedsMax(t *testing.T) {
	r := newTestRegistry()
	id, _ := r.Extract("tiny-shadow", t0)

	for i := 0; i < 50; i++ {
		_, err := r.GainExp(id, float64(i*13))
		require.NoError(t, err)
		s, _ := r.Get(id)
		assert.LessOrEqual(t, s.Level, 3)
		assert.Less(t, s.CurrentExp, s.ExpToNext)
	}
}

func TestAll_OrderedByExtraction(t *testing.T) {
	r := newTestRegistry()
	_, _ = r.Extract("goblin-shadow", t0.Add(2*time.Second))
	_, _ = r.Extract("goblin-shadow", t0)
	_, _ = r.Extract("tiny-shadow", t0.Add(time.Second))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"shadow-2", "shadow-3", "shadow-1"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestExportRestore(t *testing.T) {
	r := newTestRegistry()
	id, _ := r.Extract("goblin-shadow", t0)
	_, _ = r.GainExp(id, 120)
	require.NoError(t, r.SetDeployedArea(id, "goblin-cave"))

	saved := r.Export()
	saved[id].CurrentExpMultiplier = 99

	restored := newTestRegistry()
	require.NoError(t, restored.Restore(saved))

	s, ok := restored.Get(id)
	require.True(t, ok)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 20.0, s.CurrentExp)
	assert.InDelta(t, 0.55, s.CurrentExpMultiplier, 1e-9)
	assert.Equal(t, "goblin-cave", s.DeployedArea)

	original, _ := r.Get(id)
	assert.InDelta(t, 0.55, original.CurrentExpMultiplier, 1e-9)
}

func TestRestore_RejectsUnknownTemplate(t *testing.T) {
	r := newTestRegistry()

	err := r.Restore(map[string]*domain.ShadowInstance{
		"x": {ID: "x", TemplateID: "forgotten", Level: 1},
	})
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestRestore_ClampsLevel(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.Restore(map[string]*domain.ShadowInstance{
		"x": {ID: "x", TemplateID: "tiny-shadow", Level: 9, CurrentExp: 40},
	}))

	s, _ := r.Get("x")
	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 0.0, s.CurrentExp)
}
