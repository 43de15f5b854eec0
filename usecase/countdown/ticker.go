package countdown

import (
	"sync"
	"time"
)

// TickFunc receives one decrement signal per elapsed interval.
type TickFunc func(id string)

// Ticker is the cancellable clock source for one timer. Start launches a
// goroutine that invokes fn once per interval until Stop is called. Stop is
// idempotent and, combined with the run loop re-checking the stop channel
// before every delivery, guarantees no callback fires after it returns
// observable state to the caller's lock.
type Ticker struct {
	id       string
	interval time.Duration
	fn       TickFunc

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTicker builds a ticker for the given timer id. Intervals at or below
// zero default to one second.
func NewTicker(id string, interval time.Duration, fn TickFunc) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		id:       id,
		interval: interval,
		fn:       fn,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the ticking loop. Callers are responsible for not starting
// the same ticker twice; the store keeps at most one ticker per timer id.
func (t *Ticker) Start() {
	go t.run()
}

// Stop cancels the ticker. Safe to call multiple times.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

func (t *Ticker) run() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			// Drop a signal that was already scheduled when Stop ran.
			select {
			case <-t.stopCh:
				return
			default:
			}
			t.fn(t.id)
		}
	}
}
