package usecase

import (
	"context"

	"github.com/multitimer/backend/domain"
)

// Notifier abstracts the alert delivery channel so the timer store stays
// transport-agnostic. Delivery is fire-and-forget: a returned error is
// logged by the caller and never affects timer state.
type Notifier interface {
	Notify(ctx context.Context, title, body string, timer domain.Timer) error
}
