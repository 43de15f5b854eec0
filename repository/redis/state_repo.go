// Package redis persists the store snapshot under a single Redis key,
// matching the opaque get/set key-value contract the store expects.
package redis

import (
	"context"
	"encoding/json"

	redislib "github.com/redis/go-redis/v9"

	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/repository"
)

type stateRepository struct {
	client *redislib.Client
	key    string
}

// NewStateRepository creates a Redis-backed state repository.
func NewStateRepository(client *redislib.Client, key string) repository.StateRepository {
	if key == "" {
		key = "timerState"
	}
	return &stateRepository{
		client: client,
		key:    key,
	}
}

func (r *stateRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	result, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if err == redislib.Nil {
			return domain.Snapshot{}, domain.ErrStateNotFound
		}
		return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInternal, "state load failed", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(result), &snapshot); err != nil {
		return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInternal, "corrupt persisted state", err)
	}
	return snapshot, nil
}

func (r *stateRepository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "state encode failed", err)
	}
	// No TTL: the snapshot lives until the next save overwrites it.
	return r.client.Set(ctx, r.key, payload, 0).Err()
}

func (r *stateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *stateRepository) Close() error {
	return r.client.Close()
}
