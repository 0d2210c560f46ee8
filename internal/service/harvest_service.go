package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/metrics"
	"trivia-harvester/internal/util"

	"go.uber.org/zap"
)

// HarvestPipeline runs discover, accumulate, normalize, persist and publish, and keeps
// the outcome of the latest run for the status API.
type HarvestPipeline struct {
	discoverer     domain.CountDiscoverer
	accumulator    *Accumulator
	persister      domain.Persister
	publishers     []domain.Publisher
	publishEnabled bool
	logger         *zap.Logger
	now            func() time.Time
	newRunID       func() string

	mu            sync.RWMutex
	lastReport    *domain.RunReport
	latest        []domain.NormalizedItem
	lastSuccessAt time.Time
}

var (
	_ domain.HarvestService = (*HarvestPipeline)(nil)
	_ domain.HarvestStatus  = (*HarvestPipeline)(nil)
)

// NewHarvestPipeline creates a pipeline. Publishers run in order after a successful
// persist when publishEnabled is true.
func NewHarvestPipeline(
	discoverer domain.CountDiscoverer,
	accumulator *Accumulator,
	persister domain.Persister,
	publishers []domain.Publisher,
	publishEnabled bool,
	logger *zap.Logger,
) *HarvestPipeline {
	return &HarvestPipeline{
		discoverer:     discoverer,
		accumulator:    accumulator,
		persister:      persister,
		publishers:     publishers,
		publishEnabled: publishEnabled,
		logger:         logger,
		now:            time.Now,
		newRunID:       util.NewRunID,
		latest:         []domain.NormalizedItem{},
	}
}

// RunOnce performs one full pipeline run. A discovery failure skips fetching, persisting
// and publishing. Publisher failures are logged and never fail the run.
func (p *HarvestPipeline) RunOnce(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     p.newRunID(),
		StartedAt: p.now(),
	}
	logger := p.logger.With(zap.String("run_id", report.RunID))
	logger.Info("Starting harvest run")

	p.mu.Lock()
	p.lastReport = cloneReport(report)
	p.mu.Unlock()

	expected, err := p.discoverer.Discover(ctx)
	if err != nil {
		logger.Error("Failed to discover question count", zap.String("code", string(domain.CodeOf(err))), zap.Error(err))
		return p.finish(report, nil, err), err
	}
	report.Expected = expected
	if expected <= 0 {
		err := domain.NewNonPositiveCountError(expected)
		logger.Error("Refusing to harvest without questions", zap.Int("expected", expected), zap.Error(err))
		return p.finish(report, nil, err), err
	}
	logger.Info("Discovered question count", zap.Int("expected", expected))

	collection, stats, err := p.accumulator.Accumulate(ctx, expected)
	report.Attempts = stats.Attempts
	report.FailedAttempts = stats.FailedAttempts
	if collection != nil {
		report.Collected = collection.Len()
	}
	if err != nil {
		logger.Error("Accumulation stopped before reaching the expected count",
			zap.Int("expected", expected),
			zap.Int("collected", report.Collected),
			zap.Error(err),
		)
		return p.finish(report, nil, err), err
	}

	items := Normalize(collection.Items())
	logger.Info("Normalized questions",
		zap.Int("collected", collection.Len()),
		zap.Int("kept", len(items)),
		zap.Int("duplicates", stats.Duplicates),
	)

	if err := p.persister.Persist(ctx, items); err != nil {
		logger.Error("Failed to persist results", zap.String("path", p.persister.Path()), zap.Error(err))
		return p.finish(report, nil, err), err
	}
	report.Persisted = len(items)

	if p.publishEnabled {
		snapshot := &domain.Snapshot{
			RunID:      report.RunID,
			OutputPath: p.persister.Path(),
			Items:      items,
			CreatedAt:  p.now(),
		}
		p.publish(ctx, logger, snapshot)
	}

	logger.Info("Harvest run finished", zap.Int("persisted", report.Persisted))
	return p.finish(report, items, nil), nil
}

func (p *HarvestPipeline) publish(ctx context.Context, logger *zap.Logger, snapshot *domain.Snapshot) {
	for _, publisher := range p.publishers {
		if err := publisher.Publish(ctx, snapshot); err != nil {
			metrics.PublishTotal.WithLabelValues(publisher.Name(), "error").Inc()
			logger.Warn("Publisher failed",
				zap.String("publisher", publisher.Name()),
				zap.Error(domain.NewPublishError(publisher.Name(), err)),
			)
			continue
		}
		metrics.PublishTotal.WithLabelValues(publisher.Name(), "ok").Inc()
	}
}

// finish stamps the report, records metrics and stores the report as the latest one.
// items replaces the latest questions only on success.
func (p *HarvestPipeline) finish(report *domain.RunReport, items []domain.NormalizedItem, err error) *domain.RunReport {
	finished := p.now()
	report.FinishedAt = &finished
	if err != nil {
		report.Error = err.Error()
	}

	metrics.RunsTotal.WithLabelValues(runResult(err)).Inc()
	metrics.RunDurationSeconds.Observe(finished.Sub(report.StartedAt).Seconds())

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastReport = cloneReport(report)
	if err == nil {
		p.latest = items
		p.lastSuccessAt = finished
	}
	return report
}

// LastReport returns a copy of the latest report, which may belong to a run in progress.
func (p *HarvestPipeline) LastReport() (*domain.RunReport, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastReport == nil {
		return nil, false
	}
	return cloneReport(p.lastReport), true
}

// LatestQuestions returns the items persisted by the last successful run.
func (p *HarvestPipeline) LatestQuestions() []domain.NormalizedItem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.NormalizedItem, len(p.latest))
	copy(out, p.latest)
	return out
}

func (p *HarvestPipeline) LastSuccessAt() (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSuccessAt, !p.lastSuccessAt.IsZero()
}

func cloneReport(r *domain.RunReport) *domain.RunReport {
	c := *r
	if r.FinishedAt != nil {
		finished := *r.FinishedAt
		c.FinishedAt = &finished
	}
	return &c
}

func runResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return strings.ToLower(string(domain.CodeOf(err)))
	}
}
