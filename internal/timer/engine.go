// Package timer implements the focus/rest interval state machine.
//
// The countdown is drift-resistant: while running, remaining time is always
// recomputed from the absolute end timestamp, so a suspended process or a
// restart mid-countdown lands back on the correct value. The machine is
// cyclic: focus completion flips to rest and vice versa, always landing in
// paused with a fresh full duration.
//
// State is persisted per calendar day; a timer left running across midnight
// keeps counting against the day it was started on (crossing midnight while
// running is deliberately unhandled).
package timer

import (
	"errors"
	"time"

	"checkin-cli/internal/model"
)

// Fixed cycle durations. No arbitrary durations: the mode picks one of
// exactly two focus/rest pairs.
var cycles = map[model.TimerMode]struct{ focus, rest time.Duration }{
	model.ModeShort: {25 * time.Minute, 5 * time.Minute},
	model.ModeLong:  {50 * time.Minute, 10 * time.Minute},
}

// PhaseDuration returns the full duration for a mode/phase pair.
func PhaseDuration(mode model.TimerMode, phase model.TimerPhase) time.Duration {
	c, ok := cycles[mode]
	if !ok {
		c = cycles[model.ModeShort]
	}
	if phase == model.PhaseRest {
		return c.rest
	}
	return c.focus
}

var (
	ErrRunning    = errors.New("timer already running")
	ErrNotRunning = errors.New("timer not running")
	ErrBusy       = errors.New("pause the timer first")
)

// Slot is the persistence seam: the engine saves on every state change and
// rehydrates on construction.
type Slot interface {
	Load() (model.TimerState, bool)
	Save(model.TimerState) error
}

// Notifier receives the fire-and-forget phase-completion side effects.
// Implementations must not block; failures are swallowed by the caller.
type Notifier interface {
	Notify(title, body string)
	Vibrate(d time.Duration)
}

// Engine drives one day's timer.
type Engine struct {
	slot     Slot
	now      func() time.Time
	notifier Notifier

	// onFocusDone fires once when a focus phase completes with a bound task.
	onFocusDone func(taskID string)

	st       model.TimerState
	hydrated bool
}

type Option func(*Engine)

// WithClock replaces the wall clock (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNotifier sets the completion side-effect collaborator.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithFocusDone sets the bound-task auto-complete callback.
func WithFocusDone(fn func(taskID string)) Option {
	return func(e *Engine) { e.onFocusDone = fn }
}

// WithDefaultMode picks the cycle used when no state was persisted yet.
// Persisted state wins over the preference.
func WithDefaultMode(mode model.TimerMode) Option {
	return func(e *Engine) {
		if e.hydrated || !mode.Valid() {
			return
		}
		e.st.Mode = mode
		e.st.RemainMs = PhaseDuration(mode, e.st.Phase).Milliseconds()
	}
}

// New rehydrates the engine from its slot, or starts a fresh
// focus/paused/full-duration state for the day.
func New(slot Slot, opts ...Option) *Engine {
	e := &Engine{
		slot: slot,
		now:  time.Now,
	}
	if st, ok := slot.Load(); ok {
		e.st = st
		e.hydrated = true
	} else {
		e.st = model.TimerState{
			Mode:     model.ModeShort,
			Phase:    model.PhaseFocus,
			RemainMs: PhaseDuration(model.ModeShort, model.PhaseFocus).Milliseconds(),
		}
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// State returns the raw persisted-shape state.
func (e *Engine) State() model.TimerState { return e.st }

// Remaining is the current countdown value, recomputed from EndAt while
// running (1s ceiling, never negative).
func (e *Engine) Remaining() time.Duration {
	if !e.st.Running {
		return time.Duration(e.st.RemainMs) * time.Millisecond
	}
	left := time.UnixMilli(e.st.EndAt).Sub(e.now())
	if left <= 0 {
		return 0
	}
	// Ceil to whole seconds so the display never shows 0 while time is left.
	return time.Duration((left.Milliseconds()+999)/1000) * time.Second
}

// Start begins the countdown from the frozen remaining duration. Only valid
// while paused.
func (e *Engine) Start() error {
	if e.st.Running {
		return ErrRunning
	}
	remain := time.Duration(e.st.RemainMs) * time.Millisecond
	if remain <= 0 {
		remain = PhaseDuration(e.st.Mode, e.st.Phase)
	}
	e.st.EndAt = e.now().Add(remain).UnixMilli()
	e.st.RemainMs = 0
	e.st.Running = true
	return e.slot.Save(e.st)
}

// Pause freezes the exact remaining duration so a later Start resumes where
// the countdown left off. Only valid while running. Pausing at or past
// expiry completes the phase instead.
func (e *Engine) Pause() error {
	if !e.st.Running {
		return ErrNotRunning
	}
	left := time.UnixMilli(e.st.EndAt).Sub(e.now())
	if left <= 0 {
		return e.complete()
	}
	e.st.RemainMs = left.Milliseconds()
	e.st.EndAt = 0
	e.st.Running = false
	return e.slot.Save(e.st)
}

// Tick drives phase completion. It is safe to call at any cadence and any
// number of times: expiry completes the phase exactly once, because
// completion lands in paused and further ticks are no-ops.
func (e *Engine) Tick() error {
	if !e.st.Running {
		return nil
	}
	if e.now().UnixMilli() < e.st.EndAt {
		return nil
	}
	return e.complete()
}

func (e *Engine) complete() error {
	finished := e.st.Phase

	if finished == model.PhaseFocus && e.st.BoundTaskID != "" && e.onFocusDone != nil {
		e.onFocusDone(e.st.BoundTaskID)
	}
	e.fireNotification(finished)

	next := model.PhaseRest
	if finished == model.PhaseRest {
		next = model.PhaseFocus
	}
	e.st.Phase = next
	e.st.Running = false
	e.st.EndAt = 0
	e.st.RemainMs = PhaseDuration(e.st.Mode, next).Milliseconds()
	return e.slot.Save(e.st)
}

// fireNotification is best-effort: a denied permission or broken notifier
// must never surface as an engine error or block the transition.
func (e *Engine) fireNotification(finished model.TimerPhase) {
	if e.notifier == nil {
		return
	}
	defer func() { _ = recover() }()
	if finished == model.PhaseFocus {
		e.notifier.Notify("Focus complete", "Time for a break.")
	} else {
		e.notifier.Notify("Break over", "Back to focus.")
	}
	e.notifier.Vibrate(200 * time.Millisecond)
}

// Reset returns to focus/paused with a full focus duration, from any state.
func (e *Engine) Reset() error {
	e.st.Phase = model.PhaseFocus
	e.st.Running = false
	e.st.EndAt = 0
	e.st.RemainMs = PhaseDuration(e.st.Mode, model.PhaseFocus).Milliseconds()
	return e.slot.Save(e.st)
}

// SetMode switches the cycle. Only permitted while paused; the current
// phase restarts with the new mode's full duration.
func (e *Engine) SetMode(mode model.TimerMode) error {
	if e.st.Running {
		return ErrBusy
	}
	if !mode.Valid() {
		return errors.New("invalid mode: expected short|long")
	}
	e.st.Mode = mode
	e.st.EndAt = 0
	e.st.RemainMs = PhaseDuration(mode, e.st.Phase).Milliseconds()
	return e.slot.Save(e.st)
}

// SetPhase jumps directly to a phase. Only permitted while paused; the
// target phase gets its full duration.
func (e *Engine) SetPhase(phase model.TimerPhase) error {
	if e.st.Running {
		return ErrBusy
	}
	if !phase.Valid() {
		return errors.New("invalid phase: expected focus|rest")
	}
	e.st.Phase = phase
	e.st.EndAt = 0
	e.st.RemainMs = PhaseDuration(e.st.Mode, phase).Milliseconds()
	return e.slot.Save(e.st)
}

// Bind attaches (or with "" detaches) the task auto-completed when a focus
// phase finishes. The reference is weak; the task may no longer exist by
// completion time.
func (e *Engine) Bind(taskID string) error {
	e.st.BoundTaskID = taskID
	return e.slot.Save(e.st)
}
