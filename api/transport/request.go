package transport

// TimerRequest carries the add/update timer intents.
type TimerRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Category           string `json:"category"`
	Duration           int    `json:"duration"`
	RemainingTime      *int   `json:"remaining_time"`
	Status             string `json:"status"`
	EnableHalfwayAlert bool   `json:"enable_halfway_alert"`
}

// PatchRequest mirrors the store's partial update: nil fields untouched.
type PatchRequest struct {
	Name               *string `json:"name"`
	Category           *string `json:"category"`
	Status             *string `json:"status"`
	RemainingTime      *int    `json:"remaining_time"`
	EnableHalfwayAlert *bool   `json:"enable_halfway_alert"`
	RestoreRemaining   bool    `json:"restore_remaining"`
}

// BatchUpdateRequest is the updateMany intent.
type BatchUpdateRequest struct {
	IDs   []string     `json:"ids"`
	Patch PatchRequest `json:"patch"`
}

// HistoryEntryRequest is the recordCompletion intent.
type HistoryEntryRequest struct {
	TimerID     string `json:"timer_id"`
	CompletedAt string `json:"completed_at"`
}
