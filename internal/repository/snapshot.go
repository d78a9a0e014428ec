package repository

import (
	"context"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// Snapshot persists serialized games by save slot
type Snapshot interface {
	// SaveSnapshot writes snap to slot, replacing any previous save
	SaveSnapshot(ctx context.Context, slot string, snap *domain.Snapshot) error
	// LoadSnapshot returns domain.ErrSnapshotNotFound when the slot is empty
	LoadSnapshot(ctx context.Context, slot string) (*domain.Snapshot, error)
	// DeleteSnapshot removes a slot; deleting an empty slot is not an error
	DeleteSnapshot(ctx context.Context, slot string) error
	ListSlots(ctx context.Context) ([]string, error)
}
