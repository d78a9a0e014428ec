package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Whole-number amounts keep the float arithmetic exact, so any split of a
// total must land on exactly the same progress.
func TestApplyExperience_AnySplitMatchesSingleGrant(t *testing.T) {
	e := newTestEngine()

	rapid.Check(t, func(rt *rapid.T) {
		chunks := rapid.SliceOfN(rapid.IntRange(0, 5000), 1, 40).Draw(rt, "chunks")

		total := 0
		split := e.NewPlayer("")
		for _, c := range chunks {
			total += c
			_, err := e.ApplyExperience(split, float64(c))
			require.NoError(rt, err)
		}

		whole := e.NewPlayer("")
		_, err := e.ApplyExperience(whole, float64(total))
		require.NoError(rt, err)

		assert.Equal(rt, whole.Level, split.Level)
		assert.Equal(rt, whole.CurrentExp, split.CurrentExp)
		assert.Equal(rt, whole.ExpToNext, split.ExpToNext)
		assert.Equal(rt, whole.AvailableStatPoints, split.AvailableStatPoints)
		assert.Equal(rt, whole.TotalExpEarned, split.TotalExpEarned)
	})
}

func TestApplyExperience_PostConditions(t *testing.T) {
	e := newTestEngine()

	rapid.Check(t, func(rt *rapid.T) {
		p := e.NewPlayer("")
		amounts := rapid.SliceOfN(rapid.Float64Range(0, 1e5), 1, 20).Draw(rt, "amounts")

		for _, a := range amounts {
			before := p.Level
			result, err := e.ApplyExperience(p, a)
			require.NoError(rt, err)

			assert.GreaterOrEqual(rt, p.CurrentExp, 0.0)
			assert.Less(rt, p.CurrentExp, p.ExpToNext)
			assert.Equal(rt, e.Config().Curve.ExpToNext(p.Level), p.ExpToNext)
			assert.Equal(rt, before, result.OldLevel)
			assert.Equal(rt, p.Level, result.NewLevel)
			assert.Equal(rt, e.TotalStatPointsGranted(p.Level), p.AvailableStatPoints)
		}
	})
}
