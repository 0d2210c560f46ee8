package service

import (
	"context"
	"time"

	"trivia-harvester/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// --- MockCountDiscoverer ---
type MockCountDiscoverer struct {
	mock.Mock
}

func (m *MockCountDiscoverer) Discover(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// --- MockBatchFetcher ---
type MockBatchFetcher struct {
	mock.Mock
}

func (m *MockBatchFetcher) FetchBatch(ctx context.Context) ([]domain.RawItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawItem), args.Error(1)
}

// --- MockPersister ---
type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Persist(ctx context.Context, items []domain.NormalizedItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockPersister) Path() string {
	return "results.json"
}

// --- MockPublisher ---
type MockPublisher struct {
	mock.Mock
	name string
}

func (m *MockPublisher) Name() string {
	return m.name
}

func (m *MockPublisher) Publish(ctx context.Context, snapshot *domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- MockHarvestService ---
type MockHarvestService struct {
	mock.Mock
}

func (m *MockHarvestService) RunOnce(ctx context.Context) (*domain.RunReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunReport), args.Error(1)
}

// recordingSleeper records requested durations without blocking.
type recordingSleeper struct {
	calls []time.Duration
	// cancelAfter cancels the context on the n-th call when set.
	cancelAfter int
	cancel      context.CancelFunc
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	if s.cancel != nil && len(s.calls) >= s.cancelAfter {
		s.cancel()
	}
	return ctx.Err()
}

func rawMultiple(question, answer string) domain.RawItem {
	return domain.RawItem{
		Type:             domain.QuestionTypeMultiple,
		Difficulty:       "easy",
		Category:         "General Knowledge",
		Question:         question,
		CorrectAnswer:    answer,
		IncorrectAnswers: []string{"x", "y", "z"},
	}
}

func rawBoolean(question, answer string) domain.RawItem {
	return domain.RawItem{
		Type:             domain.QuestionTypeBoolean,
		Difficulty:       "easy",
		Category:         "General Knowledge",
		Question:         question,
		CorrectAnswer:    answer,
		IncorrectAnswers: []string{"False"},
	}
}

func newTestAccumulator(fetcher domain.BatchFetcher, opts AccumulatorOptions, sleeper *recordingSleeper) *Accumulator {
	acc := NewAccumulator(fetcher, opts, zap.NewNop())
	acc.sleep = sleeper.Sleep
	return acc
}
