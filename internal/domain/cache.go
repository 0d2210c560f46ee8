package domain

import (
	"context"
	"time"
)

// SnapshotRecord is the cached form of a harvest snapshot.
type SnapshotRecord struct {
	RunID      string
	OutputPath string
	Count      int
	CreatedAt  time.Time
	// Payload is the JSON array of NormalizedItem.
	Payload string
}

// SnapshotStore keeps the latest harvest in a key/value store for other services to read.
type SnapshotStore interface {
	// StoreSnapshot replaces the stored snapshot and its run metadata atomically.
	// A ttl of 0 keeps them until the next run overwrites them.
	StoreSnapshot(ctx context.Context, record SnapshotRecord, ttl time.Duration) error

	// Ping checks the health of the store.
	Ping(ctx context.Context) error
}
