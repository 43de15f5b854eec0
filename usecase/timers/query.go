package timers

import (
	"sort"

	"github.com/multitimer/backend/domain"
)

// Filter narrows the timer listing. Zero values match everything;
// IncludeCompleted mirrors the home screen's default of hiding finished
// timers.
type Filter struct {
	Category         string
	Status           domain.Status
	IncludeCompleted bool
}

// Timers returns a filtered copy of the timer collection in insertion order.
func (s *Store) Timers(filter Filter) []domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Timer, 0, len(s.snapshot.Timers))
	for _, t := range s.snapshot.Timers {
		if t.IsCompleted() && !filter.IncludeCompleted && filter.Status != domain.StatusCompleted {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GetTimer returns a copy of one timer.
func (s *Store) GetTimer(id string) (domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Timer{}, domain.ErrTimerNotFound
	}
	return s.snapshot.Timers[idx], nil
}

// History returns completion records, newest first.
func (s *Store) History() []domain.HistoryEntry {
	s.mu.Lock()
	out := make([]domain.HistoryEntry, len(s.snapshot.History))
	copy(out, s.snapshot.History)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}

// Categories returns the registered category labels.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.snapshot.Categories...)
}
