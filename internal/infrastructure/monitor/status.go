package monitor

import (
	"time"

	"github.com/multitimer/backend/usecase/timers"
)

type Status struct {
	Storage   bool         `json:"storage"`
	Store     timers.Stats `json:"store"`
	LastCheck time.Time    `json:"last_check"`
}
