// Package notify provides Notifier implementations for the timer alerts.
// Delivery is fire-and-forget everywhere: a failed send is logged by the
// store and never touches timer state.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/multitimer/backend/domain"
)

// LogNotifier writes alerts to the application log. It is the default
// gateway when no external channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, title, body string, timer domain.Timer) error {
	n.logger.Info("timer alert",
		zap.String("title", title),
		zap.String("body", body),
		zap.String("timer_id", timer.ID),
		zap.String("timer_name", timer.Name),
		zap.String("category", timer.Category),
	)
	return nil
}
