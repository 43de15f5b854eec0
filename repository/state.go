package repository

import (
	"context"

	"github.com/multitimer/backend/domain"
)

// StateRepository persists the full store snapshot as one document under a
// fixed key. Load returns domain.ErrStateNotFound when nothing has been
// saved yet; callers fall back to the default snapshot on any load failure.
type StateRepository interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Ping(ctx context.Context) error
	Close() error
}
