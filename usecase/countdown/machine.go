// Package countdown holds the per-timer lifecycle rules: a pure transition
// function over domain.Timer plus the ticking clock that drives it. Side
// effects (notifications, history records) are returned as values and
// executed by the caller after the transition, keeping the rules themselves
// deterministic and unit-testable.
package countdown

import "github.com/multitimer/backend/domain"

// Event is the closed set of intents a single timer understands.
type Event int

const (
	// EventToggle starts a paused timer or pauses a running one.
	EventToggle Event = iota
	// EventReset returns a non-completed timer to full duration, paused.
	EventReset
	// EventTick removes one second from a running timer.
	EventTick
)

// EffectType names a side effect the caller must perform after a transition.
type EffectType int

const (
	// EffectStopTicking cancels the timer's clock source.
	EffectStopTicking EffectType = iota
	// EffectNotifyHalfway emits the halfway alert.
	EffectNotifyHalfway
	// EffectNotifyCompletion emits the completion alert.
	EffectNotifyCompletion
	// EffectRecordCompletion appends an immutable history entry.
	EffectRecordCompletion
)

// Effect pairs an effect type with the timer state that produced it.
type Effect struct {
	Type  EffectType
	Timer domain.Timer
}

// Transition applies ev to t and returns the next timer value together with
// the effects the caller must execute, in order. It never mutates t.
//
// A completed timer is terminal: toggle and reset are refused with
// domain.ErrTimerCompleted rather than silently restarting it.
func Transition(t domain.Timer, ev Event) (domain.Timer, []Effect, error) {
	switch ev {
	case EventToggle:
		return toggle(t)
	case EventReset:
		return reset(t)
	case EventTick:
		return tick(t)
	}
	return t, nil, domain.NewError(domain.ErrCodeInvalid, "unknown timer event")
}

func toggle(t domain.Timer) (domain.Timer, []Effect, error) {
	if t.IsCompleted() {
		return t, nil, domain.ErrTimerCompleted
	}
	if t.Status == domain.StatusRunning {
		t.Status = domain.StatusPaused
		return t, []Effect{{Type: EffectStopTicking, Timer: t}}, nil
	}
	t.Status = domain.StatusRunning
	return t, nil, nil
}

func reset(t domain.Timer) (domain.Timer, []Effect, error) {
	if t.IsCompleted() {
		return t, nil, domain.ErrTimerCompleted
	}
	t.Status = domain.StatusPaused
	t.RemainingTime = t.Duration
	t.HalfwayAlertShown = false
	return t, []Effect{{Type: EffectStopTicking, Timer: t}}, nil
}

// tick decrements, then checks halfway, then completion, in that order.
// A tick delivered to a timer that is no longer running is a no-op; the
// store re-validates status under its writer lock, so a tick that raced a
// pause can never decrement.
func tick(t domain.Timer) (domain.Timer, []Effect, error) {
	if t.Status != domain.StatusRunning || t.RemainingTime <= 0 {
		return t, nil, nil
	}

	t.RemainingTime--

	var effects []Effect
	if t.EnableHalfwayAlert && !t.HalfwayAlertShown && t.RemainingTime == t.HalfwayPoint() {
		t.HalfwayAlertShown = true
		effects = append(effects, Effect{Type: EffectNotifyHalfway, Timer: t})
	}

	if t.RemainingTime == 0 {
		t.Status = domain.StatusCompleted
		effects = append(effects,
			Effect{Type: EffectStopTicking, Timer: t},
			Effect{Type: EffectRecordCompletion, Timer: t},
			Effect{Type: EffectNotifyCompletion, Timer: t},
		)
	}
	return t, effects, nil
}
