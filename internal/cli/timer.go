package cli

import (
	"strings"
	"time"

	"checkin-cli/internal/model"
	"checkin-cli/internal/notify"
	"checkin-cli/internal/store"
	"checkin-cli/internal/timer"

	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Focus/rest interval timer for the day",
	}
	cmd.AddCommand(newTimerStatusCmd(app))
	cmd.AddCommand(newTimerStartCmd(app))
	cmd.AddCommand(newTimerPauseCmd(app))
	cmd.AddCommand(newTimerResetCmd(app))
	cmd.AddCommand(newTimerModeCmd(app))
	cmd.AddCommand(newTimerPhaseCmd(app))
	cmd.AddCommand(newTimerBindCmd(app))
	return cmd
}

// buildEngine wires the day's engine: persisted slot, desktop notifier and
// the bound-task auto-complete that marks the task done and bumps its
// done-pomo counter.
func buildEngine(cmd *cobra.Command, c *dayCtx) *timer.Engine {
	cfg := store.LoadConfig()

	var n timer.Notifier = notify.NewDesktop(cmd.ErrOrStderr())
	if cfg.Notify != nil && !*cfg.Notify {
		n = notify.Silent{}
	}

	opts := []timer.Option{
		timer.WithNotifier(n),
		timer.WithFocusDone(func(taskID string) {
			rec := c.days.Load(c.key)
			t, err := findTask(&rec, taskID)
			if err != nil {
				return // weak reference; the task may be gone
			}
			t.Done = true
			t.DonePomos++
			_ = c.days.Save(c.key, rec)
		}),
	}
	if m := model.TimerMode(cfg.TimerMode); m.Valid() {
		opts = append(opts, timer.WithDefaultMode(m))
	}
	return timer.New(store.TimerSlot{M: c.m, DateKey: c.key}, opts...)
}

type timerStatus struct {
	model.TimerState
	RemainingSeconds int    `json:"remainingSeconds"`
	Remaining        string `json:"remaining"`
}

func statusOf(e *timer.Engine) timerStatus {
	r := e.Remaining()
	return timerStatus{
		TimerState:       e.State(),
		RemainingSeconds: int(r / time.Second),
		Remaining:        r.Truncate(time.Second).String(),
	}
}

// withEngine settles any expired countdown first (Tick), runs the
// operation, then reports the resulting status.
func withEngine(cmd *cobra.Command, app *App, op func(*timer.Engine) error) error {
	c, err := openDay(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer c.Close()

	e := buildEngine(cmd, c)
	if err := e.Tick(); err != nil {
		return writeErr(cmd, err)
	}
	if op != nil {
		if err := op(e); err != nil {
			return writeErr(cmd, err)
		}
	}
	return writeOut(cmd, app, map[string]any{"data": statusOf(e)})
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the timer state and remaining time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, nil)
		},
	}
}

func newTimerStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start (or resume) the countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(e *timer.Engine) error { return e.Start() })
		},
	}
}

func newTimerPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause, freezing the exact remaining time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(e *timer.Engine) error { return e.Pause() })
		},
	}
}

func newTimerResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Return to a paused focus phase with a full duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(e *timer.Engine) error { return e.Reset() })
		},
	}
}

func newTimerModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mode <short|long>",
		Short: "Switch the cycle (25/5 or 50/10); paused only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(e *timer.Engine) error {
				return e.SetMode(model.TimerMode(strings.ToLower(args[0])))
			})
		},
	}
}

func newTimerPhaseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "phase <focus|rest>",
		Short: "Jump to a phase with its full duration; paused only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, app, func(e *timer.Engine) error {
				return e.SetPhase(model.TimerPhase(strings.ToLower(args[0])))
			})
		},
	}
}

func newTimerBindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bind [task-id]",
		Short: "Bind the task auto-completed on focus completion (no argument unbinds)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			e := buildEngine(cmd, c)
			if err := e.Tick(); err != nil {
				return writeErr(cmd, err)
			}

			id := ""
			if len(args) == 1 {
				rec := c.days.Load(c.key)
				t, err := findTask(&rec, args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				id = t.ID
			}
			if err := e.Bind(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": statusOf(e)})
		},
	}
}
