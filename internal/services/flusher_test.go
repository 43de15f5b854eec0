package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/usecase/timers"
)

type fakeStateRepo struct {
	mu    sync.Mutex
	saved []domain.Snapshot
	fail  bool
}

func (f *fakeStateRepo) Load(context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{}, domain.ErrStateNotFound
}

func (f *fakeStateRepo) Save(_ context.Context, snapshot domain.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("disk full")
	}
	f.saved = append(f.saved, snapshot)
	return nil
}

func (f *fakeStateRepo) Ping(context.Context) error { return nil }
func (f *fakeStateRepo) Close() error               { return nil }

func (f *fakeStateRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func newTestStore(t *testing.T) *timers.Store {
	t.Helper()
	store := timers.New(nil, nil, timers.Config{TickInterval: time.Hour})
	t.Cleanup(store.Close)
	return store
}

func TestFlushSkipsCleanStore(t *testing.T) {
	repo := &fakeStateRepo{}
	store := newTestStore(t)
	flusher := NewFlusher(store, repo, nil, FlusherConfig{Interval: time.Hour})

	if err := flusher.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if repo.saveCount() != 0 {
		t.Errorf("clean store was saved %d times", repo.saveCount())
	}
}

func TestFlushPersistsDirtySnapshotOnce(t *testing.T) {
	repo := &fakeStateRepo{}
	store := newTestStore(t)
	flusher := NewFlusher(store, repo, nil, FlusherConfig{Interval: time.Hour})

	if _, err := store.AddTimer(timers.AddSpec{Name: "x", Duration: 5}); err != nil {
		t.Fatalf("AddTimer failed: %v", err)
	}

	if err := flusher.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if repo.saveCount() != 1 {
		t.Fatalf("saves: got %d, want 1", repo.saveCount())
	}
	if len(repo.saved[0].Timers) != 1 {
		t.Errorf("saved snapshot timers: %d", len(repo.saved[0].Timers))
	}

	// Second flush with no new changes is a no-op.
	if err := flusher.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if repo.saveCount() != 1 {
		t.Errorf("coalescing broken, saves: %d", repo.saveCount())
	}
}

func TestFlushFailureKeepsStoreDirty(t *testing.T) {
	repo := &fakeStateRepo{fail: true}
	store := newTestStore(t)
	flusher := NewFlusher(store, repo, nil, FlusherConfig{Interval: time.Hour})

	if _, err := store.AddTimer(timers.AddSpec{Name: "x", Duration: 5}); err != nil {
		t.Fatalf("AddTimer failed: %v", err)
	}

	if err := flusher.Flush(context.Background()); err == nil {
		t.Fatal("Flush should report the save failure")
	}

	// The failed save re-marks the store, so the next cycle retries.
	repo.mu.Lock()
	repo.fail = false
	repo.mu.Unlock()

	if err := flusher.Flush(context.Background()); err != nil {
		t.Fatalf("retry Flush failed: %v", err)
	}
	if repo.saveCount() != 1 {
		t.Errorf("retry saves: got %d, want 1", repo.saveCount())
	}
}
