package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
)

func sampleSnapshot(level int) *domain.Snapshot {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Snapshot{
		Version: domain.SnapshotVersionCurrent,
		Player: &domain.PlayerProgress{
			Name: "Hunter", Level: level, CurrentExp: 12.5, ExpToNext: 225,
		},
		Shadows: map[string]*domain.ShadowInstance{
			"s1": {ID: "s1", TemplateID: "goblin-shadow", Level: 2, ExpToNext: 150, DeployedArea: "goblin-cave"},
		},
		Deployments:   map[string][]string{"goblin-cave": {"s1"}},
		UnlockedAreas: []string{"goblin-cave"},
		Checkpoint:    domain.Checkpoint{LastObserved: at},
		Statistics:    &domain.Statistics{TotalHunts: 4},
		GameStartTime: at,
		SavedAt:       at,
	}
}

func TestSnapshotRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	repo := NewSnapshotRepository(pool)
	ctx := context.Background()

	t.Run("missing slot", func(t *testing.T) {
		_, err := repo.LoadSnapshot(ctx, "main")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, repo.SaveSnapshot(ctx, "main", sampleSnapshot(3)))
		loaded, err := repo.LoadSnapshot(ctx, "main")
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot(3), loaded)
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, repo.SaveSnapshot(ctx, "main", sampleSnapshot(7)))
		loaded, err := repo.LoadSnapshot(ctx, "main")
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Player.Level)
	})

	t.Run("list slots", func(t *testing.T) {
		require.NoError(t, repo.SaveSnapshot(ctx, "alt", sampleSnapshot(1)))
		slots, err := repo.ListSlots(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alt", "main"}, slots)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		assert.ErrorIs(t, repo.SaveSnapshot(ctx, "main", nil), domain.ErrInvalidInput)
	})

	t.Run("delete removes activity log", func(t *testing.T) {
		events := NewEventLogRepository(pool)
		require.NoError(t, events.LogEvent(ctx, eventlog.Entry{Slot: "main", EventType: "hunt_completed", Payload: map[string]interface{}{"cycles": 1.0}}))
		require.NoError(t, events.LogEvent(ctx, eventlog.Entry{Slot: "alt", EventType: "hunt_completed", Payload: map[string]interface{}{}}))

		require.NoError(t, repo.DeleteSnapshot(ctx, "main"))
		require.NoError(t, repo.DeleteSnapshot(ctx, "main"))

		_, err := repo.LoadSnapshot(ctx, "main")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

		remaining, err := events.GetEvents(ctx, eventlog.Filter{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "alt", remaining[0].Slot)
	})
}

func TestSnapshotRepository_CorruptDocument(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO game_snapshots (slot, version, data) VALUES ('bad', 2, '{"player": "not an object"}')`)
	require.NoError(t, err)

	_, err = NewSnapshotRepository(pool).LoadSnapshot(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}
