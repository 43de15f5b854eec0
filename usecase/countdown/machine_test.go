package countdown

import (
	"testing"

	"github.com/multitimer/backend/domain"
)

func newTimer(duration int) domain.Timer {
	return domain.Timer{
		ID:            "t1",
		Name:          "Plank",
		Category:      "Workout",
		Duration:      duration,
		RemainingTime: duration,
		Status:        domain.StatusPaused,
	}
}

func TestToggleStartsAndPauses(t *testing.T) {
	timer := newTimer(60)

	running, effects, err := Transition(timer, EventToggle)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if running.Status != domain.StatusRunning {
		t.Errorf("status: got %q, want running", running.Status)
	}
	if len(effects) != 0 {
		t.Errorf("start should produce no effects, got %d", len(effects))
	}

	paused, effects, err := Transition(running, EventToggle)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if paused.Status != domain.StatusPaused {
		t.Errorf("status: got %q, want paused", paused.Status)
	}
	if len(effects) != 1 || effects[0].Type != EffectStopTicking {
		t.Errorf("pause should stop ticking, got %v", effects)
	}
	if paused.RemainingTime != 60 {
		t.Errorf("pause must not change remaining time, got %d", paused.RemainingTime)
	}
}

func TestTickDecrementsAndStopsAtZero(t *testing.T) {
	timer := newTimer(3)
	timer.Status = domain.StatusRunning

	for want := 2; want >= 1; want-- {
		next, effects, err := Transition(timer, EventTick)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if next.RemainingTime != want {
			t.Errorf("remaining: got %d, want %d", next.RemainingTime, want)
		}
		for _, e := range effects {
			if e.Type == EffectNotifyCompletion {
				t.Errorf("completion fired early at remaining=%d", next.RemainingTime)
			}
		}
		timer = next
	}

	final, effects, err := Transition(timer, EventTick)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if final.Status != domain.StatusCompleted {
		t.Errorf("status: got %q, want completed", final.Status)
	}
	if final.RemainingTime != 0 {
		t.Errorf("remaining: got %d, want 0", final.RemainingTime)
	}
	assertEffectOrder(t, effects, EffectStopTicking, EffectRecordCompletion, EffectNotifyCompletion)
}

func TestTickOnPausedIsNoop(t *testing.T) {
	timer := newTimer(10)

	next, effects, err := Transition(timer, EventTick)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if next != timer {
		t.Errorf("paused tick changed state: %+v", next)
	}
	if len(effects) != 0 {
		t.Errorf("paused tick produced effects: %v", effects)
	}
}

func TestHalfwayAlertFiresOncePerRun(t *testing.T) {
	timer := newTimer(10)
	timer.Status = domain.StatusRunning
	timer.EnableHalfwayAlert = true

	var halfway int
	for timer.Status == domain.StatusRunning {
		next, effects, err := Transition(timer, EventTick)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		for _, e := range effects {
			if e.Type == EffectNotifyHalfway {
				halfway++
				if next.RemainingTime != 5 {
					t.Errorf("halfway at remaining=%d, want 5", next.RemainingTime)
				}
			}
		}
		timer = next
	}
	if halfway != 1 {
		t.Errorf("halfway alerts: got %d, want 1", halfway)
	}
}

func TestHalfwayAlertDisabled(t *testing.T) {
	timer := newTimer(10)
	timer.Status = domain.StatusRunning

	for timer.Status == domain.StatusRunning {
		next, effects, err := Transition(timer, EventTick)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		for _, e := range effects {
			if e.Type == EffectNotifyHalfway {
				t.Fatal("halfway alert fired while disabled")
			}
		}
		timer = next
	}
}

func TestHalfwayResetsWithTimer(t *testing.T) {
	timer := newTimer(10)
	timer.Status = domain.StatusRunning
	timer.EnableHalfwayAlert = true
	timer.RemainingTime = 5
	timer.HalfwayAlertShown = true

	reset, _, err := Transition(timer, EventReset)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if reset.HalfwayAlertShown {
		t.Error("reset must clear the halfway flag")
	}
	if reset.RemainingTime != 10 || reset.Status != domain.StatusPaused {
		t.Errorf("reset state: %+v", reset)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	timer := newTimer(5)
	timer.Status = domain.StatusCompleted
	timer.RemainingTime = 0

	for _, ev := range []Event{EventToggle, EventReset} {
		next, effects, err := Transition(timer, ev)
		if err != domain.ErrTimerCompleted {
			t.Errorf("event %d: got err %v, want ErrTimerCompleted", ev, err)
		}
		if next != timer || len(effects) != 0 {
			t.Errorf("event %d changed a completed timer", ev)
		}
	}

	// A stray tick on a completed timer must also leave it untouched.
	next, effects, err := Transition(timer, EventTick)
	if err != nil || next != timer || len(effects) != 0 {
		t.Errorf("tick on completed timer: next=%+v effects=%v err=%v", next, effects, err)
	}
}

func TestShortDurationBoundary(t *testing.T) {
	// duration=1: the halfway point (0) coincides with completion.
	timer := newTimer(1)
	timer.Status = domain.StatusRunning
	timer.EnableHalfwayAlert = true

	next, effects, err := Transition(timer, EventTick)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if next.Status != domain.StatusCompleted {
		t.Errorf("status: got %q, want completed", next.Status)
	}
	assertEffectOrder(t, effects, EffectNotifyHalfway, EffectStopTicking, EffectRecordCompletion, EffectNotifyCompletion)
}

func TestRemainingNeverLeavesBounds(t *testing.T) {
	timer := newTimer(4)
	timer.Status = domain.StatusRunning

	for i := 0; i < 10; i++ {
		next, _, err := Transition(timer, EventTick)
		if err != nil {
			t.Fatalf("tick failed: %v", err)
		}
		if next.RemainingTime < 0 || next.RemainingTime > next.Duration {
			t.Fatalf("remaining out of bounds: %d", next.RemainingTime)
		}
		timer = next
	}
}

func assertEffectOrder(t *testing.T, effects []Effect, want ...EffectType) {
	t.Helper()
	if len(effects) != len(want) {
		t.Fatalf("effects: got %d, want %d (%v)", len(effects), len(want), effects)
	}
	for i, w := range want {
		if effects[i].Type != w {
			t.Errorf("effect[%d]: got %d, want %d", i, effects[i].Type, w)
		}
	}
}
