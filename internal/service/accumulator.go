package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/metrics"

	"go.uber.org/zap"
)

// AccumulatorOptions bounds and paces the accumulation loop.
type AccumulatorOptions struct {
	PacingDelay time.Duration
	// MaxAttempts caps the number of batch requests. 0 means unbounded.
	MaxAttempts int
	// Deadline caps the wall-clock duration of one accumulation. 0 means unbounded.
	Deadline           time.Duration
	TruncateToExpected bool
}

// AccumulateStats describes the work done by one Accumulate call.
type AccumulateStats struct {
	Attempts       int
	FailedAttempts int
	Duplicates     int
}

// Accumulator repeatedly fetches random batches until the expected number of
// distinct questions has been collected.
type Accumulator struct {
	fetcher domain.BatchFetcher
	opts    AccumulatorOptions
	sleep   Sleeper
	now     func() time.Time
	logger  *zap.Logger
}

func NewAccumulator(fetcher domain.BatchFetcher, opts AccumulatorOptions, logger *zap.Logger) *Accumulator {
	return &Accumulator{
		fetcher: fetcher,
		opts:    opts,
		sleep:   TimerSleep,
		now:     time.Now,
		logger:  logger,
	}
}

// Accumulate collects at least expected unique items, deduplicated by question text.
// The last batch may overshoot expected unless TruncateToExpected is set.
func (a *Accumulator) Accumulate(ctx context.Context, expected int) (*domain.ItemCollection, AccumulateStats, error) {
	collection := domain.NewItemCollection()
	var stats AccumulateStats

	metrics.ExpectedQuestions.Set(float64(expected))
	metrics.CollectedQuestions.Set(0)
	if expected <= 0 {
		return collection, stats, nil
	}

	started := a.now()
	for collection.Len() < expected {
		if err := ctx.Err(); err != nil {
			return collection, stats, err
		}
		if a.opts.MaxAttempts > 0 && stats.Attempts >= a.opts.MaxAttempts {
			return collection, stats, domain.NewTargetUnreachableError(collection.Len(), expected,
				fmt.Sprintf("gave up after %d batch requests", stats.Attempts))
		}
		if a.opts.Deadline > 0 && a.now().Sub(started) >= a.opts.Deadline {
			return collection, stats, domain.NewTargetUnreachableError(collection.Len(), expected,
				fmt.Sprintf("deadline of %s exceeded", a.opts.Deadline))
		}

		stats.Attempts++
		batch, err := a.fetcher.FetchBatch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return collection, stats, ctxErr
			}
			stats.FailedAttempts++
			metrics.BatchRequestsTotal.WithLabelValues(outcomeOf(err)).Inc()
			a.logger.Warn("Batch request failed, continuing",
				zap.Int("attempt", stats.Attempts),
				zap.String("code", string(domain.CodeOf(err))),
				zap.Error(err),
			)
		} else {
			metrics.BatchRequestsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
			added := collection.AddAll(batch)
			duplicates := len(batch) - added
			stats.Duplicates += duplicates
			metrics.DuplicateQuestionsTotal.Add(float64(duplicates))
			metrics.CollectedQuestions.Set(float64(collection.Len()))
			a.logger.Info("Collected batch",
				zap.Int("attempt", stats.Attempts),
				zap.Int("added", added),
				zap.Int("collected", collection.Len()),
				zap.Int("expected", expected),
			)
		}

		if collection.Len() >= expected {
			break
		}
		if err := a.sleep(ctx, a.opts.PacingDelay); err != nil {
			return collection, stats, err
		}
	}

	if a.opts.TruncateToExpected {
		collection.Truncate(expected)
		metrics.CollectedQuestions.Set(float64(collection.Len()))
	}
	return collection, stats, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return metrics.OutcomeTransportError
	case errors.Is(err, domain.ErrAPIStatus):
		return metrics.OutcomeAPIError
	default:
		return metrics.OutcomeError
	}
}
