package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
)

func TestEventLogRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	repo := NewEventLogRepository(pool)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []eventlog.Entry{
		{Slot: "main", EventType: "hunt_completed", Payload: map[string]interface{}{"area_id": "goblin-cave"}, Metadata: map[string]interface{}{"source": "hunt"}, CreatedAt: base},
		{Slot: "main", EventType: "player_level_up", Payload: map[string]interface{}{"new_level": 2.0}, CreatedAt: base.Add(time.Minute)},
		{Slot: "main", EventType: "hunt_completed", Payload: map[string]interface{}{"area_id": "spider-den"}, CreatedAt: base.Add(2 * time.Minute)},
		{Slot: "other", EventType: "hunt_completed", Payload: map[string]interface{}{}, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, repo.LogEvent(ctx, e))
	}

	t.Run("newest first for slot", func(t *testing.T) {
		got, err := repo.GetEvents(ctx, eventlog.Filter{Slot: "main"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "spider-den", got[0].Payload["area_id"])
		assert.Equal(t, "goblin-cave", got[2].Payload["area_id"])
		assert.Equal(t, "hunt", got[2].Metadata["source"])
		assert.Nil(t, got[1].Metadata)
	})

	t.Run("filters", func(t *testing.T) {
		hunt := "hunt_completed"
		since := base.Add(30 * time.Second)

		got, err := repo.GetEvents(ctx, eventlog.Filter{Slot: "main", EventType: &hunt, Since: &since, Limit: 5})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "spider-den", got[0].Payload["area_id"])

		limited, err := repo.GetEvents(ctx, eventlog.Filter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, limited, 2)
		assert.Equal(t, "other", limited[0].Slot)
	})

	t.Run("cleanup", func(t *testing.T) {
		removed, err := repo.CleanupOldEvents(ctx, base.Add(90*time.Second))
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		left, err := repo.GetEvents(ctx, eventlog.Filter{})
		require.NoError(t, err)
		assert.Len(t, left, 2)
	})
}
