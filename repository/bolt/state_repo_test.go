package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/multitimer/backend/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	repo, err := Open(path, "state", "timerState")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	snapshot := domain.Snapshot{
		Timers: []domain.Timer{{
			ID: "a", Name: "Plank", Category: "Workout",
			Duration: 60, RemainingTime: 45, Status: domain.StatusPaused,
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}},
		History:    []domain.HistoryEntry{},
		Categories: []string{"Workout"},
	}

	ctx := context.Background()
	if err := repo.Save(ctx, snapshot); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Timers) != 1 || loaded.Timers[0].ID != "a" || loaded.Timers[0].RemainingTime != 45 {
		t.Errorf("loaded timers: %+v", loaded.Timers)
	}
	if len(loaded.Categories) != 1 || loaded.Categories[0] != "Workout" {
		t.Errorf("loaded categories: %v", loaded.Categories)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "state.db"), "", "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	if _, err := repo.Load(context.Background()); !errors.Is(err, domain.ErrStateNotFound) {
		t.Errorf("got %v, want ErrStateNotFound", err)
	}
}

func TestSaveOverwritesPreviousState(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "state.db"), "state", "timerState")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	first := domain.DefaultSnapshot()
	first.Timers = []domain.Timer{{ID: "a", Name: "a", Duration: 5, Status: domain.StatusPaused}}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := domain.DefaultSnapshot()
	second.Timers = []domain.Timer{
		{ID: "b", Name: "b", Duration: 7, Status: domain.StatusPaused},
		{ID: "c", Name: "c", Duration: 9, Status: domain.StatusPaused},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Timers) != 2 || loaded.Timers[0].ID != "b" {
		t.Errorf("state not written whole: %+v", loaded.Timers)
	}
}

func TestPing(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "state.db"), "state", "timerState")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
