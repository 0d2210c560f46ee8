package publish

import (
	"context"
	"time"

	"trivia-harvester/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockSnapshotStore ---
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) StoreSnapshot(ctx context.Context, record domain.SnapshotRecord, ttl time.Duration) error {
	args := m.Called(ctx, record, ttl)
	return args.Error(0)
}

func (m *MockSnapshotStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ReplaceAll(ctx context.Context, runID string, items []domain.NormalizedItem) error {
	args := m.Called(ctx, runID, items)
	return args.Error(0)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
