package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ShadowArmy_Go/internal/config"
	"github.com/osse101/ShadowArmy_Go/internal/event"
	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StorageDriver:        config.StorageDriverFile,
		SaveDir:              filepath.Join(dir, "saves"),
		SaveSlot:             "test",
		SnapshotCacheSize:    4,
		SnapshotCacheTTL:     time.Minute,
		ActivityLogCapacity:  10,
		EventDeadLetterPath:  filepath.Join(dir, "events", "deadletter.jsonl"),
		PlayerName:           "Tester",
		PlayerExpGrowth:      1.5,
		ShadowExpGrowth:      1.2,
		StatPointsPerLevel:   3,
		ShadowLevelBonus:     0.2,
		ShadowExpShare:       0.25,
		OfflineMinElapsed:    30 * time.Second,
		OfflineHuntCatchUp:   true,
		ActivityLogRetention: time.Hour,
	}
}

func TestGameConfig(t *testing.T) {
	gc := GameConfig(fileConfig(t))

	assert.Equal(t, "Tester", gc.PlayerName)
	assert.Equal(t, 1.5, gc.Progression.Curve.Growth)
	assert.Equal(t, 3, gc.Progression.StatPointsPerLevel)
	assert.Equal(t, 1.2, gc.Shadow.Curve.Growth)
	assert.Equal(t, 0.2, gc.Shadow.LevelBonus)
	assert.Equal(t, 0.25, gc.ShadowExpShare)
	assert.Equal(t, 30*time.Second, gc.Offline.MinElapsed)
	assert.True(t, gc.Offline.HuntCatchUp)
}

func TestInitializeEventSystem_CreatesDeadLetterDir(t *testing.T) {
	cfg := fileConfig(t)

	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Publisher.Shutdown(context.Background()) })

	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))

	delivered := make(chan event.Event, 1)
	events.Bus.Subscribe(event.HuntCompleted, func(_ context.Context, e event.Event) error {
		delivered <- e
		return nil
	})
	require.NoError(t, events.Publisher.Publish(context.Background(), event.Event{Type: event.HuntCompleted}))
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("event not delivered through publisher")
	}
}

func TestInitializeRepositories_FileDriver(t *testing.T) {
	cfg := fileConfig(t)

	repos, err := InitializeRepositories(context.Background(), cfg)
	require.NoError(t, err)
	defer repos.Close()

	assert.Nil(t, repos.Pool)
	assert.IsType(t, &eventlog.MemoryRepository{}, repos.EventLog)
	assert.DirExists(t, cfg.SaveDir)

	slots, err := repos.Snapshot.ListSlots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestInitializeGame_NewThenResumed(t *testing.T) {
	ctx := context.Background()
	cfg := fileConfig(t)
	repos, err := InitializeRepositories(ctx, cfg)
	require.NoError(t, err)

	svc, err := InitializeGame(ctx, cfg, event.NewMemoryBus(), repos.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Player(ctx).Level)
	assert.Equal(t, "Tester", svc.Player(ctx).Name)

	_, err = svc.ApplyExperience(ctx, 500)
	require.NoError(t, err)
	SaveOnShutdown(ctx, svc)
	assert.FileExists(t, filepath.Join(cfg.SaveDir, "test.json"))

	// a fresh process sees the saved level
	repos.Snapshot.Invalidate()
	resumed, err := InitializeGame(ctx, cfg, event.NewMemoryBus(), repos.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, svc.Player(ctx).Level, resumed.Player(ctx).Level)
}

func TestRegisterEventHandlers_ActivityLog(t *testing.T) {
	bus := event.NewMemoryBus()
	repo := eventlog.NewMemoryRepository(10)
	activity := eventlog.NewService(repo, "test")

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, EventLogService: activity}))
	require.NoError(t, bus.Publish(context.Background(), event.Event{
		Type:    event.HuntCompleted,
		Payload: map[string]interface{}{"area_id": "goblin-cave"},
	}))

	entries, err := activity.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"session_2025-01-01_00-00-00.log",
		"session_2025-01-02_00-00-00.log",
		"session_2025-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	cleanupLogs(dir, 2)

	assert.NoFileExists(t, filepath.Join(dir, names[0]))
	assert.FileExists(t, filepath.Join(dir, names[1]))
	assert.FileExists(t, filepath.Join(dir, names[2]))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
