package domain

import (
	"context"
	"time"
)

// CountDiscoverer finds how many questions the remote source holds.
type CountDiscoverer interface {
	Discover(ctx context.Context) (int, error)
}

// BatchFetcher requests one batch of random questions.
// Transport failures are reported as ErrTransport, non-success API codes as ErrAPIStatus.
type BatchFetcher interface {
	FetchBatch(ctx context.Context) ([]RawItem, error)
}

// Persister writes the normalized result to its destination.
type Persister interface {
	Persist(ctx context.Context, items []NormalizedItem) error
	Path() string
}

// Publisher pushes a persisted snapshot to a remote location. Publishing is best effort.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, snapshot *Snapshot) error
}

// QuestionRepository stores the latest harvest in a database.
type QuestionRepository interface {
	ReplaceAll(ctx context.Context, runID string, items []NormalizedItem) error
	Count(ctx context.Context) (int, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HarvestService runs the discover, accumulate, normalize, persist and publish pipeline.
type HarvestService interface {
	RunOnce(ctx context.Context) (*RunReport, error)
}

// HarvestStatus exposes the outcome of the most recent run.
type HarvestStatus interface {
	LastReport() (*RunReport, bool)
	LatestQuestions() []NormalizedItem
	LastSuccessAt() (time.Time, bool)
}
