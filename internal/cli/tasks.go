package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"
	"checkin-cli/internal/sched"
	"checkin-cli/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// dayCtx bundles the open medium and the day a command operates on.
type dayCtx struct {
	m      *store.SQLiteMedium
	days   store.DayStore
	anchor time.Time
	key    string
}

func openDay(app *App) (*dayCtx, error) {
	m, err := openMedium(app)
	if err != nil {
		return nil, err
	}
	anchor, err := anchorDate(app)
	if err != nil {
		m.Close()
		return nil, err
	}
	return &dayCtx{
		m:      m,
		days:   dayStore(m),
		anchor: anchor,
		key:    clock.DateKey(anchor),
	}, nil
}

func (c *dayCtx) Close() { _ = c.m.Close() }

// findTask resolves a task by exact id or unique id prefix.
func findTask(rec *model.DayRecord, idOrPrefix string) (*model.Task, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, errors.New("missing task id")
	}
	for i := range rec.Tasks {
		if rec.Tasks[i].ID == idOrPrefix {
			return &rec.Tasks[i], nil
		}
	}
	var hit *model.Task
	n := 0
	for i := range rec.Tasks {
		if strings.HasPrefix(rec.Tasks[i].ID, idOrPrefix) {
			hit = &rec.Tasks[i]
			n++
		}
	}
	switch n {
	case 1:
		return hit, nil
	case 0:
		return nil, errNotFound("task", idOrPrefix)
	default:
		return nil, errAmbiguous("task", idOrPrefix, n)
	}
}

// taskView is a task plus its derived display properties.
type taskView struct {
	model.Task
	Overdue        bool   `json:"overdue"`
	EnergyMismatch bool   `json:"energyMismatch"`
	GoalTitle      string `json:"goalTitle,omitempty"`
}

func viewOf(t model.Task, anchor time.Time, goals store.GoalStore) taskView {
	v := taskView{
		Task:           t,
		Overdue:        sched.Overdue(t, anchor, time.Now()),
		EnergyMismatch: sched.EnergyMismatch(t),
	}
	if g, ok := goals.Resolve(t.GoalID); ok {
		v.GoalTitle = g.Title
	}
	return v
}

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands for one day",
	}

	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksSectionsCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app, true))
	cmd.AddCommand(newTasksDoneCmd(app, false))
	cmd.AddCommand(newTasksRemoveCmd(app))
	cmd.AddCommand(newTasksClearCmd(app))
	cmd.AddCommand(newTasksSetCmds(app)...)

	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var section, window, output, priority, remark, goalID string
	var minutes, plannedPomos int
	var altDays bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			prio := model.Priority(strings.TrimSpace(priority))
			if priority != "" && !prio.Valid() {
				return writeErr(cmd, errors.New("invalid --priority (expected one of the four quadrant codes)"))
			}

			t := sched.Normalize(model.Task{
				ID:           uuid.NewString(),
				Title:        strings.TrimSpace(args[0]),
				Section:      strings.TrimSpace(section),
				FixedWindow:  strings.TrimSpace(window),
				Minutes:      minutes,
				Output:       strings.TrimSpace(output),
				Priority:     prio,
				Remark:       remark,
				AltDays:      altDays,
				GoalID:       strings.TrimSpace(goalID),
				PlannedPomos: plannedPomos,
			})

			rec := c.days.Load(c.key)
			rec.Tasks = append(rec.Tasks, t)
			if err := c.days.Save(c.key, rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Section label (free-form)")
	cmd.Flags().StringVar(&window, "window", "", "Fixed window HH:MM-HH:MM")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Estimate in minutes (default: window span, min 5)")
	cmd.Flags().StringVar(&output, "output", "", "Expected artifact")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority quadrant (default important-not-urgent)")
	cmd.Flags().StringVar(&remark, "remark", "", "Free-text remark")
	cmd.Flags().BoolVar(&altDays, "alt-days", false, "Visible only on even days of the month")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal id (weak reference)")
	cmd.Flags().IntVar(&plannedPomos, "planned-pomos", 0, "Planned focus intervals")

	return cmd
}

func newTasksSectionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the curated section labels (section itself is free-form)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": model.DefaultSections()})
		},
	}
}

func newTasksListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the day's tasks in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			rec := c.days.Load(c.key)
			tasks := rec.Tasks
			if !all {
				tasks = sched.VisibleTasks(tasks, c.anchor)
			}
			sched.SortByWindow(tasks)

			goals := store.GoalStore{M: c.m}
			views := make([]taskView, 0, len(tasks))
			for _, t := range tasks {
				views = append(views, viewOf(t, c.anchor, goals))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"date":  c.key,
				"tasks": views,
			}})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include alt-days tasks hidden on this date")

	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task with derived properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			rec := c.days.Load(c.key)
			t, err := findTask(&rec, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": viewOf(*t, c.anchor, store.GoalStore{M: c.m})})
		},
	}
}

func newTasksDoneCmd(app *App, done bool) *cobra.Command {
	use, short := "done <task-id>", "Mark a task done"
	if !done {
		use, short = "undone <task-id>", "Mark a task not done"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], func(t *model.Task) error {
				t.Done = done
				return nil
			})
		},
	}
}

func newTasksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Remove a task from the day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			rec := c.days.Load(c.key)
			t, err := findTask(&rec, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			id := t.ID
			out := rec.Tasks[:0]
			for _, x := range rec.Tasks {
				if x.ID != id {
					out = append(out, x)
				}
			}
			rec.Tasks = out
			if err := c.days.Save(c.key, rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": id}})
		},
	}
}

func newTasksClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the day to an empty record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("refusing to clear without --yes"))
			}
			c, err := openDay(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer c.Close()

			if err := c.days.Clear(c.key); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": c.key}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the clear")

	return cmd
}

// mutateTask applies an edit to one task and persists the whole day record.
func mutateTask(cmd *cobra.Command, app *App, idOrPrefix string, fn func(*model.Task) error) error {
	c, err := openDay(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer c.Close()

	rec := c.days.Load(c.key)
	t, err := findTask(&rec, idOrPrefix)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(t); err != nil {
		return writeErr(cmd, err)
	}
	*t = sched.Normalize(*t)
	if err := c.days.Save(c.key, rec); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": *t})
}

func newTasksSetCmds(app *App) []*cobra.Command {
	setStr := func(use, short string, apply func(*model.Task, string)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <task-id> <value>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return mutateTask(cmd, app, args[0], func(t *model.Task) error {
					apply(t, args[1])
					return nil
				})
			},
		}
	}

	title := setStr("set-title", "Set the task title", func(t *model.Task, v string) { t.Title = strings.TrimSpace(v) })
	window := setStr("set-window", "Set the fixed window (HH:MM-HH:MM, empty to unschedule)", func(t *model.Task, v string) {
		t.FixedWindow = strings.TrimSpace(v)
		t.Minutes = 0 // re-derive from the new window
	})
	section := setStr("set-section", "Set the section label", func(t *model.Task, v string) { t.Section = strings.TrimSpace(v) })
	output := setStr("set-output", "Set the expected artifact", func(t *model.Task, v string) { t.Output = strings.TrimSpace(v) })
	// Remark is always editable, locked display mode or not.
	remark := setStr("set-remark", "Set the free-text remark", func(t *model.Task, v string) { t.Remark = v })

	priority := &cobra.Command{
		Use:   "set-priority <task-id> <quadrant>",
		Short: "Set the priority quadrant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], func(t *model.Task) error {
				p := model.Priority(strings.TrimSpace(args[1]))
				if !p.Valid() {
					return errors.New("invalid quadrant (expected important-urgent|important-not-urgent|not-important-urgent|not-important-not-urgent)")
				}
				t.Priority = p
				return nil
			})
		},
	}

	altDays := &cobra.Command{
		Use:   "set-alt-days <task-id> <true|false>",
		Short: "Restrict visibility to even days of the month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], func(t *model.Task) error {
				v, err := strconv.ParseBool(args[1])
				if err != nil {
					return errors.New("expected true or false")
				}
				t.AltDays = v
				return nil
			})
		},
	}

	goal := setStr("set-goal", "Point the task at a goal id (empty to detach)", func(t *model.Task, v string) { t.GoalID = strings.TrimSpace(v) })

	pomos := &cobra.Command{
		Use:   "set-pomos <task-id> <planned> [done]",
		Short: "Set the focus-interval counters",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], func(t *model.Task) error {
				planned, err := strconv.Atoi(args[1])
				if err != nil || planned < 0 {
					return errors.New("planned must be a non-negative integer")
				}
				t.PlannedPomos = planned
				if len(args) == 3 {
					done, err := strconv.Atoi(args[2])
					if err != nil || done < 0 {
						return errors.New("done must be a non-negative integer")
					}
					t.DonePomos = done
				}
				return nil
			})
		},
	}

	minutes := &cobra.Command{
		Use:   "set-minutes <task-id> <minutes>",
		Short: "Set the estimate (clamped to a 5 minute floor)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, app, args[0], func(t *model.Task) error {
				n, err := strconv.Atoi(args[1])
				if err != nil || n <= 0 {
					return errors.New("minutes must be a positive integer")
				}
				t.Minutes = n
				return nil
			})
		},
	}

	return []*cobra.Command{title, window, section, output, remark, priority, altDays, goal, pomos, minutes}
}
