package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/catalog"
	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/hunting"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// field earns 5 exp/s per multiplier point, cave 25/3 exp/s
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	areas := []domain.Area{
		{
			ID: "field", Name: "Field", UnlockLevel: 1, BaseExpReward: 10, HuntDurationMs: 2000,
			DropTable: []domain.ShadowDrop{{ShadowTemplateID: "slime", DropChancePercent: 50}},
		},
		{
			ID: "cave", Name: "Cave", UnlockLevel: 3, BaseExpReward: 25, HuntDurationMs: 3000,
			DropTable: []domain.ShadowDrop{{ShadowTemplateID: "bat", DropChancePercent: 10}},
		},
		{ID: "tower", Name: "Tower", UnlockLevel: 10, BaseExpReward: 100, HuntDurationMs: 5000},
	}
	templates := []domain.ShadowTemplate{
		{ID: "slime", Name: "Slime", Rarity: domain.RarityCommon, BaseExpMultiplier: 1.0, MaxLevel: 10, SourceAreaID: "field"},
		{ID: "bat", Name: "Bat", Rarity: domain.RarityRare, BaseExpMultiplier: 2.0, MaxLevel: 5, SourceAreaID: "cave"},
	}
	rarities := map[domain.Rarity]domain.RarityConfig{
		domain.RarityCommon:    {BaseExpMultiplier: 1, MaxLevel: 10},
		domain.RarityUncommon:  {BaseExpMultiplier: 1.5, MaxLevel: 10},
		domain.RarityRare:      {BaseExpMultiplier: 2, MaxLevel: 5},
		domain.RarityEpic:      {BaseExpMultiplier: 3, MaxLevel: 5},
		domain.RarityLegendary: {BaseExpMultiplier: 5, MaxLevel: 5},
	}
	c, err := catalog.New(areas, templates, rarities)
	require.NoError(t, err)
	return c
}

// scriptedRoller replays samples, then misses forever
func scriptedRoller(samples ...float64) hunting.Roller {
	i := 0
	return func() float64 {
		if i >= len(samples) {
			return 99.9
		}
		v := samples[i]
		i++
		return v
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("shadow-%d", n)
	}
}

func newTestState(t *testing.T, cfg Config, samples ...float64) *State {
	t.Helper()
	return NewState(testCatalog(t), cfg, t0, WithRoller(scriptedRoller(samples...)), WithShadowIDs(sequentialIDs()))
}

func eventTypes(events []event.Event) []event.Type {
	out := make([]event.Type, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
