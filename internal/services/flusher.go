package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/multitimer/backend/repository"
	"github.com/multitimer/backend/usecase/timers"
)

// FlusherConfig controls how often dirty snapshots are persisted.
type FlusherConfig struct {
	Interval time.Duration
}

// Flusher coalesces rapid snapshot changes into periodic saves. The store
// marks itself dirty on every mutation; the flusher persists at most once
// per interval and once more on shutdown, so persistence latency never
// blocks ticking.
type Flusher struct {
	store  *timers.Store
	repo   repository.StateRepository
	logger *zap.Logger
	cron   *cron.Cron
	cfg    FlusherConfig
}

func NewFlusher(store *timers.Store, repo repository.StateRepository, logger *zap.Logger, cfg FlusherConfig) *Flusher {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Flusher{
		store:  store,
		repo:   repo,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", max(1, int(cfg.Interval.Seconds())))
	_, _ = f.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := f.Flush(ctx); err != nil {
			f.logger.Error("state flush failed", zap.Error(err))
		}
	})

	return f
}

// Start launches the cron scheduler.
func (f *Flusher) Start() {
	if f == nil || f.cron == nil {
		return
	}
	f.cron.Start()
	f.logger.Info("state flusher started", zap.Duration("interval", f.cfg.Interval))
}

// Stop halts the scheduler and performs a final flush so a clean shutdown
// never loses the last snapshot.
func (f *Flusher) Stop(ctx context.Context) {
	if f == nil || f.cron == nil {
		return
	}
	stopCtx := f.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	if err := f.Flush(ctx); err != nil {
		f.logger.Error("final state flush failed", zap.Error(err))
	}
	f.logger.Info("state flusher stopped")
}

// Flush saves the snapshot if the store is dirty. A failed save re-marks
// the store so the next cycle retries; in-memory state is never affected.
func (f *Flusher) Flush(ctx context.Context) error {
	snapshot, dirty := f.store.DirtySnapshot()
	if !dirty {
		return nil
	}
	if err := f.repo.Save(ctx, snapshot); err != nil {
		f.store.MarkDirty()
		return err
	}
	f.logger.Debug("state flushed",
		zap.Int("timers", len(snapshot.Timers)),
		zap.Int("history", len(snapshot.History)))
	return nil
}
