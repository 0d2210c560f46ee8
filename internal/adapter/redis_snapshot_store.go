package adapter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"trivia-harvester/internal/cache"
	"trivia-harvester/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore implements domain.SnapshotStore on a Redis client.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore expects a connected *redis.Client.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

// StoreSnapshot writes the payload under cache.SnapshotKey and the run metadata hash under
// cache.RunMetaKey in one MULTI/EXEC transaction.
func (s *RedisSnapshotStore) StoreSnapshot(ctx context.Context, record domain.SnapshotRecord, ttl time.Duration) error {
	metaKey := cache.RunMetaKey()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, cache.SnapshotKey(), record.Payload, ttl)
		pipe.HSet(ctx, metaKey,
			"run_id", record.RunID,
			"count", strconv.Itoa(record.Count),
			"output_path", record.OutputPath,
			"created_at", record.CreatedAt.UTC().Format(time.RFC3339),
		)
		if ttl > 0 {
			pipe.Expire(ctx, metaKey, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", record.RunID, err)
	}
	return nil
}

// Ping checks the health of the Redis server.
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
