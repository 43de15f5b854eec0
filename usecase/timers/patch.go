package timers

import "github.com/multitimer/backend/domain"

// Patch is a partial timer update for UpdateMany. Nil fields are left
// untouched. RestoreRemaining sets each timer back to its own full duration
// and clears the halfway flag, which is how reset-all works across timers
// of different lengths.
type Patch struct {
	Name               *string
	Category           *string
	Status             *domain.Status
	RemainingTime      *int
	EnableHalfwayAlert *bool
	RestoreRemaining   bool
}

// Apply returns the patched timer with invariants clamped.
func (p Patch) Apply(t domain.Timer) domain.Timer {
	if p.Name != nil && *p.Name != "" {
		t.Name = *p.Name
	}
	if p.Category != nil && *p.Category != "" {
		t.Category = *p.Category
	}
	// Completion only ever happens through the tick path, so a patch can
	// move a timer between paused and running but never mark it completed.
	if p.Status != nil && (*p.Status == domain.StatusPaused || *p.Status == domain.StatusRunning) {
		t.Status = *p.Status
	}
	if p.RemainingTime != nil {
		t.RemainingTime = *p.RemainingTime
	}
	if p.EnableHalfwayAlert != nil {
		t.EnableHalfwayAlert = *p.EnableHalfwayAlert
	}
	if p.RestoreRemaining {
		t.RemainingTime = t.Duration
		t.HalfwayAlertShown = false
	}
	return t.Normalized()
}
