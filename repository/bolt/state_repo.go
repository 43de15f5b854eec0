// Package bolt persists the store snapshot in a local BoltDB file: one
// bucket, one fixed key, one JSON document written whole on every flush.
package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/repository"
)

type stateRepository struct {
	db     *bolt.DB
	bucket []byte
	key    []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path, bucket, key string) (repository.StateRepository, error) {
	if bucket == "" {
		bucket = "state"
	}
	if key == "" {
		key = "timerState"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &stateRepository{
		db:     db,
		bucket: []byte(bucket),
		key:    []byte(key),
	}, nil
}

func (r *stateRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	var payload []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(r.bucket).Get(r.key); raw != nil {
			payload = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInternal, "state load failed", err)
	}
	if payload == nil {
		return domain.Snapshot{}, domain.ErrStateNotFound
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, domain.WrapError(domain.ErrCodeInternal, "corrupt persisted state", err)
	}
	return snapshot, nil
}

func (r *stateRepository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "state encode failed", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put(r.key, payload)
	})
}

func (r *stateRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(r.bucket) == nil {
			return bolt.ErrBucketNotFound
		}
		return nil
	})
}

func (r *stateRepository) Close() error {
	return r.db.Close()
}
