package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/poorcraft/npc-engine/internal/npc"
)

// RedisStore persists NPC snapshots in Redis so agent state survives
// despawn and process restarts.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStore implements the snapshot store interface
var _ npc.SnapshotStore = (*RedisStore)(nil)

// NewRedisStore creates a new Redis snapshot store
func NewRedisStore(redisURL string, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

// Health and lifecycle methods

func (r *RedisStore) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Snapshot operations

func snapshotKey(id uuid.UUID) string {
	return "npc:" + id.String()
}

func (r *RedisStore) SaveSnapshot(ctx context.Context, snap *npc.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal snapshot", "npc_id", snap.ID, "error", err)
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	cmd := r.client.Set(ctx, snapshotKey(snap.ID), string(data), 0)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save snapshot", "npc_id", snap.ID, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (r *RedisStore) LoadSnapshot(ctx context.Context, id uuid.UUID) (*npc.Snapshot, error) {
	cmd := r.client.Get(ctx, snapshotKey(id))
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load snapshot", "npc_id", id, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		return nil, nil
	}

	var snap npc.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		r.logger.Error("Failed to unmarshal snapshot", "npc_id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

func (r *RedisStore) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	cmd := r.client.Del(ctx, snapshotKey(id))
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete snapshot", "npc_id", id, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
