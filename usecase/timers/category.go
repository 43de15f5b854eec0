package timers

import "github.com/multitimer/backend/domain"

// CategoryAction is a bulk command applied to every non-completed timer in
// a category.
type CategoryAction string

const (
	ActionStart CategoryAction = "start"
	ActionPause CategoryAction = "pause"
	ActionReset CategoryAction = "reset"
)

// ApplyCategoryAction resolves the category to its non-completed timer ids
// and applies the matching patch in one atomic UpdateMany. Returns the
// number of timers touched.
func (s *Store) ApplyCategoryAction(category string, action CategoryAction) (int, error) {
	var patch Patch
	running := domain.StatusRunning
	paused := domain.StatusPaused

	switch action {
	case ActionStart:
		patch = Patch{Status: &running}
	case ActionPause:
		patch = Patch{Status: &paused}
	case ActionReset:
		patch = Patch{Status: &paused, RestoreRemaining: true}
	default:
		return 0, domain.NewError(domain.ErrCodeInvalid, "unknown category action")
	}

	s.mu.Lock()
	ids := make([]string, 0, len(s.snapshot.Timers))
	for _, t := range s.snapshot.Timers {
		if t.Category == category && !t.IsCompleted() {
			ids = append(ids, t.ID)
		}
	}
	s.mu.Unlock()

	return s.UpdateMany(ids, patch), nil
}
