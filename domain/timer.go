package domain

import "time"

// Status is the lifecycle state of a countdown timer.
type Status string

const (
	StatusPaused    Status = "paused"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPaused, StatusRunning, StatusCompleted:
		return true
	}
	return false
}

// Timer represents a named countdown. Duration is immutable after creation;
// RemainingTime counts down from Duration to zero while the timer runs.
type Timer struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Duration           int       `json:"duration"`
	RemainingTime      int       `json:"remaining_time"`
	Status             Status    `json:"status"`
	EnableHalfwayAlert bool      `json:"enable_halfway_alert"`
	HalfwayAlertShown  bool      `json:"halfway_alert_shown"`
	CreatedAt          time.Time `json:"created_at"`
}

func (t *Timer) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// HalfwayPoint returns the remaining-time value at which the halfway
// alert fires.
func (t *Timer) HalfwayPoint() int {
	if t == nil {
		return 0
	}
	return t.Duration / 2
}

// Validate checks the fields a creation intent must supply.
func (t *Timer) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if t.Name == "" {
		return NewError(ErrCodeInvalid, "timer name is required")
	}
	if t.Duration <= 0 {
		return NewError(ErrCodeInvalid, "timer duration must be positive")
	}
	return nil
}

// Normalized returns a copy of the timer with its invariants enforced:
// remaining time clamped to [0, duration], a completed timer pinned at
// zero remaining, and unknown statuses coerced to paused.
func (t Timer) Normalized() Timer {
	if !t.Status.Valid() {
		t.Status = StatusPaused
	}
	if t.RemainingTime > t.Duration {
		t.RemainingTime = t.Duration
	}
	if t.RemainingTime < 0 {
		t.RemainingTime = 0
	}
	if t.Status == StatusCompleted {
		t.RemainingTime = 0
	}
	return t
}

// HistoryEntry is an immutable snapshot of a timer taken at the moment it
// completed.
type HistoryEntry struct {
	Timer
	CompletedAt time.Time `json:"completed_at"`
}

// NewHistoryEntry captures the given timer as a completion record.
func NewHistoryEntry(t Timer, completedAt time.Time) HistoryEntry {
	return HistoryEntry{Timer: t, CompletedAt: completedAt}
}
