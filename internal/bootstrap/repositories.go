package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ShadowArmy_Go/internal/config"
	"github.com/osse101/ShadowArmy_Go/internal/database"
	"github.com/osse101/ShadowArmy_Go/internal/database/filestore"
	"github.com/osse101/ShadowArmy_Go/internal/database/postgres"
	"github.com/osse101/ShadowArmy_Go/internal/eventlog"
	"github.com/osse101/ShadowArmy_Go/internal/repository"
)

// Repositories holds the storage backends selected by STORAGE_DRIVER.
// Pool is nil unless the driver is postgres.
type Repositories struct {
	Snapshot *repository.CachedSnapshot
	EventLog eventlog.Repository
	Pool     *pgxpool.Pool
}

// InitializeRepositories opens the configured storage. The postgres driver
// connects and migrates before returning; the file driver keeps saves as JSON
// files and the activity log in memory. Snapshots are always read through an
// LRU cache.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	repos := &Repositories{}
	var inner repository.Snapshot

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "name", cfg.DBName)

		repos.Pool = pool
		repos.EventLog = postgres.NewEventLogRepository(pool)
		inner = postgres.NewSnapshotRepository(pool)
	default:
		store, err := filestore.NewSnapshotStore(cfg.SaveDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateSaveDir, err)
		}
		repos.EventLog = eventlog.NewMemoryRepository(cfg.ActivityLogCapacity)
		inner = store
	}

	repos.Snapshot = repository.NewCachedSnapshot(inner, cfg.SnapshotCacheSize, cfg.SnapshotCacheTTL)

	slog.Info(LogMsgStorageInitialized,
		"driver", cfg.StorageDriver,
		"slot", cfg.SaveSlot,
		"cache_size", cfg.SnapshotCacheSize)
	return repos, nil
}

// Close releases the database pool, if any
func (r *Repositories) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
}
