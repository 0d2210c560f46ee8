package publish

import (
	"context"
	"fmt"
	"time"

	"trivia-harvester/internal/domain"
	"trivia-harvester/internal/util"

	"go.uber.org/zap"
)

// CachePublisher stores the latest snapshot and its run metadata in a SnapshotStore.
type CachePublisher struct {
	store  domain.SnapshotStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachePublisher(store domain.SnapshotStore, ttl time.Duration, logger *zap.Logger) *CachePublisher {
	return &CachePublisher{store: store, ttl: ttl, logger: logger}
}

func (p *CachePublisher) Name() string { return "cache" }

// Publish implements domain.Publisher.
func (p *CachePublisher) Publish(ctx context.Context, snapshot *domain.Snapshot) error {
	items := snapshot.Items
	if items == nil {
		items = []domain.NormalizedItem{}
	}
	payload, err := util.MarshalJSON(items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	record := domain.SnapshotRecord{
		RunID:      snapshot.RunID,
		OutputPath: snapshot.OutputPath,
		Count:      len(items),
		CreatedAt:  snapshot.CreatedAt,
		Payload:    string(payload),
	}
	if err := p.store.StoreSnapshot(ctx, record, p.ttl); err != nil {
		return err
	}

	p.logger.Debug("Stored snapshot in cache", zap.String("run_id", snapshot.RunID), zap.Int("count", len(items)))
	return nil
}
