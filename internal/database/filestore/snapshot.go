// Package filestore keeps save slots as JSON documents in a directory.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/osse101/ShadowArmy_Go/internal/concurrency"
	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/repository"
	"github.com/osse101/ShadowArmy_Go/internal/utils"
)

const (
	slotExtension = ".json"
	dirPermission = 0755
)

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// SnapshotStore implements repository.Snapshot with one file per slot.
// Access to a slot's file is serialized per slot.
type SnapshotStore struct {
	dir   string
	locks *concurrency.LockManager
}

var _ repository.Snapshot = (*SnapshotStore)(nil)

// NewSnapshotStore creates dir if needed and returns a store rooted there
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &SnapshotStore{dir: dir, locks: concurrency.NewLockManager()}, nil
}

func (s *SnapshotStore) path(slot string) (string, error) {
	if !slotPattern.MatchString(slot) {
		return "", fmt.Errorf("%w: save slot %q", domain.ErrInvalidInput, slot)
	}
	return filepath.Join(s.dir, slot+slotExtension), nil
}

// SaveSnapshot replaces the slot's file atomically
func (s *SnapshotStore) SaveSnapshot(_ context.Context, slot string, snap *domain.Snapshot) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	return s.locks.WithLock(slot, func() error {
		return utils.SaveJSON(path, snap)
	})
}

// LoadSnapshot reads the slot's file
func (s *SnapshotStore) LoadSnapshot(_ context.Context, slot string) (*domain.Snapshot, error) {
	path, err := s.path(slot)
	if err != nil {
		return nil, err
	}

	var snap domain.Snapshot
	err = s.locks.WithRLock(slot, func() error {
		return utils.LoadJSON(path, &snap)
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NotFoundf(domain.ErrSnapshotNotFound, slot)
		}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
		}
		return nil, err
	}
	return &snap, nil
}

// DeleteSnapshot removes the slot's file
func (s *SnapshotStore) DeleteSnapshot(_ context.Context, slot string) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	return s.locks.WithLock(slot, func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete save slot %s: %w", slot, err)
		}
		return nil
	})
}

// ListSlots returns the saved slot names in sorted order
func (s *SnapshotStore) ListSlots(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	slots := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, slotExtension) {
			continue
		}
		slot := strings.TrimSuffix(name, slotExtension)
		if slotPattern.MatchString(slot) {
			slots = append(slots, slot)
		}
	}
	sort.Strings(slots)
	return slots, nil
}
