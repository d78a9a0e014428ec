package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
	"github.com/osse101/ShadowArmy_Go/internal/repository"
)

// SnapshotRepository stores one JSONB snapshot per save slot
type SnapshotRepository struct {
	db *pgxpool.Pool
}

var _ repository.Snapshot = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new PostgreSQL snapshot repository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveSnapshot upserts the slot's snapshot
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, slot string, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", domain.ErrInvalidInput)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSnapshot, err)
	}

	query := `
		INSERT INTO game_snapshots (slot, version, data, saved_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (slot) DO UPDATE
		SET version = EXCLUDED.version, data = EXCLUDED.data, saved_at = EXCLUDED.saved_at
	`
	if _, err := r.db.Exec(ctx, query, slot, snap.Version, data); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSnapshot, err)
	}

	logger.FromContext(ctx).Debug(LogMsgSnapshotSaved, "slot", slot, "version", snap.Version)
	return nil
}

// LoadSnapshot returns domain.ErrSnapshotNotFound for an empty slot and
// domain.ErrCorruptSnapshot when the stored document does not decode
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, slot string) (*domain.Snapshot, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM game_snapshots WHERE slot = $1`, slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf(domain.ErrSnapshotNotFound, slot)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSnapshot, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: slot %s: %v", domain.ErrCorruptSnapshot, slot, err)
	}
	return &snap, nil
}

// DeleteSnapshot removes the slot together with its activity log
func (r *SnapshotRepository) DeleteSnapshot(ctx context.Context, slot string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM game_events WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSnapshot, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM game_snapshots WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSnapshot, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	logger.FromContext(ctx).Debug(LogMsgSnapshotDeleted, "slot", slot, "existed", tag.RowsAffected() > 0)
	return nil
}

// ListSlots returns every slot with a saved snapshot in name order
func (r *SnapshotRepository) ListSlots(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT slot FROM game_snapshots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSlots, err)
	}
	slots, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSlots, err)
	}
	return slots, nil
}
