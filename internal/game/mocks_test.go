package game

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ShadowArmy_Go/internal/domain"
	"github.com/osse101/ShadowArmy_Go/internal/event"
)

// MockSnapshotRepository implements repository.Snapshot for testing
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, slot string, snap *domain.Snapshot) error {
	args := m.Called(ctx, slot, snap)
	return args.Error(0)
}

func (m *MockSnapshotRepository) LoadSnapshot(ctx context.Context, slot string) (*domain.Snapshot, error) {
	args := m.Called(ctx, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) DeleteSnapshot(ctx context.Context, slot string) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) ListSlots(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// recordingBus is a MemoryBus that also remembers every published event
type recordingBus struct {
	*event.MemoryBus
	mu     sync.Mutex
	events []event.Event
}

func newRecordingBus() *recordingBus {
	return &recordingBus{MemoryBus: event.NewMemoryBus()}
}

func (b *recordingBus) Publish(ctx context.Context, e event.Event) error {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
	return b.MemoryBus.Publish(ctx, e)
}

func (b *recordingBus) types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	return eventTypes(b.events)
}
