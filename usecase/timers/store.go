// Package timers implements the shared store that owns every timer, the
// completion history, and the category set. All mutations go through the
// store's single writer lock, apply the countdown state machine, and produce
// a new snapshot; the view layer only ever sees defensive copies.
package timers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/usecase"
	"github.com/multitimer/backend/usecase/countdown"
)

const (
	completionTitle = "Timer Completed! 🎉"
	halfwayTitle    = "Halfway There! ⏰"
)

// Config controls store runtime behaviour.
type Config struct {
	// TickInterval is the wall-clock spacing between decrements. One
	// second in production; tests shrink it.
	TickInterval time.Duration
}

// AddSpec is the creation intent for a new timer.
type AddSpec struct {
	Name               string
	Category           string
	Duration           int
	EnableHalfwayAlert bool
}

// Stats summarizes the store for monitoring.
type Stats struct {
	Timers  int `json:"timers"`
	Running int `json:"running"`
	History int `json:"history"`
}

// Store is the single source of truth for timer state.
type Store struct {
	notifier usecase.Notifier
	logger   *zap.Logger
	cfg      Config

	mu       sync.Mutex
	snapshot domain.Snapshot
	tickers  map[string]*countdown.Ticker
	subs     []chan Event
	dirty    bool
	closed   bool
}

// New creates an empty store seeded with the default categories.
func New(notifier usecase.Notifier, logger *zap.Logger, cfg Config) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Store{
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
		snapshot: domain.DefaultSnapshot(),
		tickers:  make(map[string]*countdown.Ticker),
	}
}

// LoadSnapshot replaces the entire state wholesale. Used once at startup
// with the persisted snapshot; timers persisted as running resume ticking
// from their saved remaining time.
func (s *Store) LoadSnapshot(snapshot domain.Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot.Normalized()
	s.reconcileLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventSnapshot, At: time.Now()})
}

// AddTimer validates and appends a new paused timer at full duration.
func (s *Store) AddTimer(spec AddSpec) (domain.Timer, error) {
	timer := domain.Timer{
		ID:                 uuid.NewString(),
		Name:               spec.Name,
		Category:           spec.Category,
		Duration:           spec.Duration,
		RemainingTime:      spec.Duration,
		Status:             domain.StatusPaused,
		EnableHalfwayAlert: spec.EnableHalfwayAlert,
		CreatedAt:          time.Now(),
	}
	if err := timer.Validate(); err != nil {
		return domain.Timer{}, err
	}

	s.mu.Lock()
	if timer.Category == "" {
		timer.Category = s.snapshot.Categories[len(s.snapshot.Categories)-1]
	}
	if !s.snapshot.HasCategory(timer.Category) {
		s.snapshot.Categories = append(s.snapshot.Categories, timer.Category)
	}
	s.snapshot.Timers = append(s.snapshot.Timers, timer)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventSnapshot, At: time.Now()})
	return timer, nil
}

// UpdateTimer replaces the timer matching the record's id wholesale.
// Last write wins: no per-field merge, no concurrency check. Invariants are
// still clamped, so a stale caller cannot push remaining time outside
// [0, duration].
func (s *Store) UpdateTimer(timer domain.Timer) (domain.Timer, error) {
	timer = timer.Normalized()

	s.mu.Lock()
	idx := s.indexLocked(timer.ID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Timer{}, domain.ErrTimerNotFound
	}
	s.snapshot.Timers[idx] = timer
	s.reconcileLocked()
	s.markDirtyLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventSnapshot, At: time.Now()})
	return timer, nil
}

// UpdateMany applies the same patch to every timer whose id is in ids.
// Completed timers are terminal and skipped. Returns the number of timers
// touched. Used for the per-category start/pause/reset-all actions.
func (s *Store) UpdateMany(ids []string, patch Patch) int {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	s.mu.Lock()
	var touched int
	for i := range s.snapshot.Timers {
		t := s.snapshot.Timers[i]
		if _, ok := wanted[t.ID]; !ok || t.IsCompleted() {
			continue
		}
		s.snapshot.Timers[i] = patch.Apply(t)
		touched++
	}
	if touched > 0 {
		s.reconcileLocked()
		s.markDirtyLocked()
	}
	s.mu.Unlock()

	if touched > 0 {
		s.emit(Event{Type: EventSnapshot, At: time.Now()})
	}
	return touched
}

// DeleteTimer removes the timer and cancels its clock. Deleting an unknown
// id is a no-op.
func (s *Store) DeleteTimer(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.stopTickerLocked(id)
	s.snapshot.Timers = append(s.snapshot.Timers[:idx], s.snapshot.Timers[idx+1:]...)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventSnapshot, At: time.Now()})
}

// AddHistoryEntry appends to the append-only completion history.
func (s *Store) AddHistoryEntry(entry domain.HistoryEntry) error {
	if entry.ID == "" {
		return domain.ErrInvalidPayload
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now()
	}

	s.mu.Lock()
	s.snapshot.History = append(s.snapshot.History, entry)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventSnapshot, At: time.Now()})
	return nil
}

// Toggle starts a paused timer or pauses a running one.
func (s *Store) Toggle(id string) (domain.Timer, error) {
	return s.applyEvent(id, countdown.EventToggle)
}

// Reset returns a non-completed timer to full duration, paused.
func (s *Store) Reset(id string) (domain.Timer, error) {
	return s.applyEvent(id, countdown.EventReset)
}

// Tick removes one second from the timer. The per-timer ticker is the only
// production caller; tests drive it directly.
func (s *Store) Tick(id string) {
	if _, err := s.applyEvent(id, countdown.EventTick); err != nil {
		s.logger.Debug("tick dropped", zap.String("timer_id", id), zap.Error(err))
	}
}

func (s *Store) applyEvent(id string, ev countdown.Event) (domain.Timer, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Timer{}, domain.ErrTimerNotFound
	}

	next, effects, err := countdown.Transition(s.snapshot.Timers[idx], ev)
	if err != nil {
		s.mu.Unlock()
		return domain.Timer{}, err
	}

	changed := next != s.snapshot.Timers[idx]
	s.snapshot.Timers[idx] = next

	events := []Event{}
	for _, effect := range effects {
		switch effect.Type {
		case countdown.EffectStopTicking:
			s.stopTickerLocked(id)
		case countdown.EffectRecordCompletion:
			// Appended inside the writer lock so "completed" status and
			// its history entry are never observable separately.
			s.snapshot.History = append(s.snapshot.History,
				domain.NewHistoryEntry(effect.Timer, time.Now()))
		case countdown.EffectNotifyHalfway:
			events = append(events, Event{Type: EventHalfway, Timer: effect.Timer, At: time.Now()})
		case countdown.EffectNotifyCompletion:
			events = append(events, Event{Type: EventCompleted, Timer: effect.Timer, At: time.Now()})
		}
	}
	if changed {
		s.reconcileLocked()
		s.markDirtyLocked()
	}
	s.mu.Unlock()

	if changed {
		events = append(events, Event{Type: EventSnapshot, At: time.Now()})
	}
	for _, e := range events {
		s.emit(e)
	}
	s.deliverAlerts(effects)

	return next, nil
}

func (s *Store) deliverAlerts(effects []countdown.Effect) {
	if s.notifier == nil {
		return
	}
	for _, effect := range effects {
		var title, body string
		switch effect.Type {
		case countdown.EffectNotifyHalfway:
			title, body = halfwayTitle, effect.Timer.Name+" is at 50%!"
		case countdown.EffectNotifyCompletion:
			title, body = completionTitle, effect.Timer.Name+" has finished!"
		default:
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.notifier.Notify(ctx, title, body, effect.Timer); err != nil {
			s.logger.Error("notification delivery failed",
				zap.String("timer_id", effect.Timer.ID),
				zap.String("title", title),
				zap.Error(err))
		}
		cancel()
	}
}

// reconcileLocked brings the ticker set in line with the snapshot: every
// running timer with time left gets exactly one ticker, everything else has
// none. Idempotent, so re-evaluating after any mutation is safe.
func (s *Store) reconcileLocked() {
	if s.closed {
		return
	}
	alive := make(map[string]struct{}, len(s.snapshot.Timers))
	for _, t := range s.snapshot.Timers {
		if t.Status != domain.StatusRunning || t.RemainingTime <= 0 {
			continue
		}
		alive[t.ID] = struct{}{}
		if _, ok := s.tickers[t.ID]; ok {
			continue
		}
		ticker := countdown.NewTicker(t.ID, s.cfg.TickInterval, s.Tick)
		s.tickers[t.ID] = ticker
		ticker.Start()
	}
	for id, ticker := range s.tickers {
		if _, ok := alive[id]; !ok {
			ticker.Stop()
			delete(s.tickers, id)
		}
	}
}

func (s *Store) stopTickerLocked(id string) {
	if ticker, ok := s.tickers[id]; ok {
		ticker.Stop()
		delete(s.tickers, id)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.snapshot.Timers {
		if s.snapshot.Timers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) markDirtyLocked() {
	s.dirty = true
}

// MarkDirty flags the snapshot for the next persistence flush. The flusher
// calls it back when a save attempt fails.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// DirtySnapshot atomically returns a copy of the current snapshot and
// clears the dirty flag, reporting whether a flush is needed.
func (s *Store) DirtySnapshot() (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return domain.Snapshot{}, false
	}
	s.dirty = false
	return s.snapshot.Clone(), true
}

// Snapshot returns a defensive copy of the full state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// GetStats reports counts for the health endpoint.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := Stats{
		Timers:  len(s.snapshot.Timers),
		History: len(s.snapshot.History),
	}
	for _, t := range s.snapshot.Timers {
		if t.Status == domain.StatusRunning {
			stats.Running++
		}
	}
	return stats
}

// Close stops every ticker and closes subscriber channels. Reads remain
// valid afterwards; ticking and event delivery stop.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, ticker := range s.tickers {
		ticker.Stop()
		delete(s.tickers, id)
	}
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}
