package timers

import (
	"time"

	"github.com/multitimer/backend/domain"
)

// EventType classifies store events for subscribers.
type EventType string

const (
	// EventSnapshot signals that the snapshot changed; subscribers read
	// the new state via Store.Snapshot.
	EventSnapshot EventType = "snapshot"
	// EventHalfway carries the timer that crossed its halfway point.
	EventHalfway EventType = "halfway"
	// EventCompleted carries the timer that just completed.
	EventCompleted EventType = "completed"
)

// Event is a store update delivered to subscribers. Timer is only set for
// halfway and completion events.
type Event struct {
	Type  EventType    `json:"type"`
	Timer domain.Timer `json:"timer,omitempty"`
	At    time.Time    `json:"at"`
}

// Subscribe registers an observer channel. Sends are non-blocking: a slow
// subscriber misses events rather than stalling the store.
func (s *Store) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) emit(event Event) {
	s.mu.Lock()
	subs := append([]chan Event(nil), s.subs...)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
