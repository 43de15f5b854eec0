package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/multitimer/backend/repository"
	"github.com/multitimer/backend/usecase/timers"
)

// Monitor periodically checks the persistence backend and samples store
// counts for the health endpoint.
type Monitor struct {
	repo  repository.StateRepository
	store *timers.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(repo repository.StateRepository, store *timers.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		repo:     repo,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

// IsOnline reports whether the persistence backend answered the last probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	m.check()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.check()
		}
	}
}

func (m *Monitor) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	storage := true
	if err := m.repo.Ping(ctx); err != nil {
		storage = false
		m.logger.Warn("storage probe failed", zap.Error(err))
	}

	m.mu.Lock()
	m.status = Status{
		Storage:   storage,
		Store:     m.store.GetStats(),
		LastCheck: time.Now(),
	}
	m.mu.Unlock()
}
