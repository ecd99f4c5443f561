package timer

import (
	"testing"
	"time"

	"checkin-cli/internal/model"
	"checkin-cli/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingNotifier struct {
	notes []string
}

func (n *recordingNotifier) Notify(title, body string) { n.notes = append(n.notes, title) }
func (n *recordingNotifier) Vibrate(time.Duration)     {}

type panickyNotifier struct{}

func (panickyNotifier) Notify(string, string) { panic("permission denied") }
func (panickyNotifier) Vibrate(time.Duration) { panic("no vibration support") }

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeClock, store.TimerSlot) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}
	slot := store.TimerSlot{M: store.NewMemMedium(), DateKey: "2025-03-10"}
	opts = append([]Option{WithClock(clk.now)}, opts...)
	return New(slot, opts...), clk, slot
}

func TestNewDefaultsToFocusPausedFullDuration(t *testing.T) {
	e, _, _ := newTestEngine(t)
	st := e.State()
	if st.Mode != model.ModeShort || st.Phase != model.PhaseFocus || st.Running {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if e.Remaining() != 25*time.Minute {
		t.Errorf("remaining = %v, want 25m", e.Remaining())
	}
}

func TestStartPauseResumesExactRemaining(t *testing.T) {
	e, clk, _ := newTestEngine(t)

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != ErrRunning {
		t.Errorf("double start = %v, want ErrRunning", err)
	}

	clk.advance(10 * time.Minute)
	if err := e.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := e.Pause(); err != ErrNotRunning {
		t.Errorf("double pause = %v, want ErrNotRunning", err)
	}
	if got := e.Remaining(); got != 15*time.Minute {
		t.Errorf("remaining after pause = %v, want 15m", got)
	}

	// Time passing while paused changes nothing.
	clk.advance(2 * time.Hour)
	if got := e.Remaining(); got != 15*time.Minute {
		t.Errorf("paused remaining drifted to %v", got)
	}

	// Resume picks up the exact frozen remainder.
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	clk.advance(14 * time.Minute)
	if got := e.Remaining(); got != 1*time.Minute {
		t.Errorf("remaining after resume = %v, want 1m", got)
	}
}

func TestTickCompletesFocusExactlyOnce(t *testing.T) {
	var completed []string
	n := &recordingNotifier{}
	e, clk, _ := newTestEngine(t,
		WithNotifier(n),
		WithFocusDone(func(id string) { completed = append(completed, id) }),
	)

	if err := e.Bind("task-1"); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	clk.advance(26 * time.Minute)
	// Multiple ticks after expiry must complete exactly once.
	for i := 0; i < 5; i++ {
		if err := e.Tick(); err != nil {
			t.Fatal(err)
		}
	}

	if len(completed) != 1 || completed[0] != "task-1" {
		t.Errorf("auto-complete fired %v times: %v", len(completed), completed)
	}
	if len(n.notes) != 1 {
		t.Errorf("notification fired %d times", len(n.notes))
	}

	st := e.State()
	if st.Phase != model.PhaseRest || st.Running {
		t.Errorf("expected rest/paused, got %+v", st)
	}
	if e.Remaining() != 5*time.Minute {
		t.Errorf("rest remaining = %v, want 5m", e.Remaining())
	}
}

func TestRestCompletionFlipsBackWithoutAutoComplete(t *testing.T) {
	var completed []string
	e, clk, _ := newTestEngine(t, WithFocusDone(func(id string) { completed = append(completed, id) }))

	if err := e.Bind("task-1"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetPhase(model.PhaseRest); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	clk.advance(6 * time.Minute)
	if err := e.Tick(); err != nil {
		t.Fatal(err)
	}

	if len(completed) != 0 {
		t.Error("rest completion must not auto-complete the bound task")
	}
	st := e.State()
	if st.Phase != model.PhaseFocus || st.Running {
		t.Errorf("expected focus/paused, got %+v", st)
	}
}

func TestNotifierFailureNeverBlocksTransition(t *testing.T) {
	e, clk, _ := newTestEngine(t, WithNotifier(panickyNotifier{}))
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	clk.advance(30 * time.Minute)
	if err := e.Tick(); err != nil {
		t.Fatalf("tick surfaced notifier failure: %v", err)
	}
	if e.State().Phase != model.PhaseRest {
		t.Error("phase should flip despite notifier failure")
	}
}

func TestSurvivesRehydrationMidCountdown(t *testing.T) {
	e, clk, slot := newTestEngine(t)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	// Simulate a reload: a fresh engine on the same slot and clock.
	clk.advance(10 * time.Minute)
	e2 := New(slot, WithClock(clk.now))
	if !e2.State().Running {
		t.Fatal("rehydrated engine should still be running")
	}
	if got := e2.Remaining(); got != 15*time.Minute {
		t.Errorf("rehydrated remaining = %v, want 15m", got)
	}

	// Backgrounded past the end: first tick completes.
	clk.advance(20 * time.Minute)
	if err := e2.Tick(); err != nil {
		t.Fatal(err)
	}
	if e2.State().Phase != model.PhaseRest {
		t.Error("expired countdown should complete on rehydrated engine")
	}
}

func TestModeAndPhaseChangesRequirePaused(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.SetMode(model.ModeLong); err != ErrBusy {
		t.Errorf("SetMode while running = %v, want ErrBusy", err)
	}
	if err := e.SetPhase(model.PhaseRest); err != ErrBusy {
		t.Errorf("SetPhase while running = %v, want ErrBusy", err)
	}
	if err := e.Pause(); err != nil {
		t.Fatal(err)
	}

	if err := e.SetMode(model.ModeLong); err != nil {
		t.Fatal(err)
	}
	if e.Remaining() != 50*time.Minute {
		t.Errorf("long focus remaining = %v, want 50m", e.Remaining())
	}
	if err := e.SetPhase(model.PhaseRest); err != nil {
		t.Fatal(err)
	}
	if e.Remaining() != 10*time.Minute {
		t.Errorf("long rest remaining = %v, want 10m", e.Remaining())
	}

	if err := e.SetMode("weird"); err == nil {
		t.Error("invalid mode should error")
	}
}

func TestResetFromAnyState(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	_ = e.SetMode(model.ModeLong)
	_ = e.Start()
	clk.advance(3 * time.Minute)

	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	st := e.State()
	if st.Phase != model.PhaseFocus || st.Running {
		t.Errorf("reset state = %+v", st)
	}
	if e.Remaining() != 50*time.Minute {
		t.Errorf("reset keeps mode: remaining = %v, want 50m", e.Remaining())
	}
}

func TestPauseAtExpiryCompletesPhase(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	clk.advance(25 * time.Minute)
	if err := e.Pause(); err != nil {
		t.Fatal(err)
	}
	if e.State().Phase != model.PhaseRest {
		t.Error("pausing past expiry should complete the phase")
	}
}

func TestRemainingCeilsToWholeSeconds(t *testing.T) {
	e, clk, _ := newTestEngine(t)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	clk.advance(25*time.Minute - 300*time.Millisecond)
	if got := e.Remaining(); got != time.Second {
		t.Errorf("remaining = %v, want 1s (ceiling)", got)
	}
}
