package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"
	"checkin-cli/internal/notify"
	"checkin-cli/internal/sched"
	"checkin-cli/internal/store"
	"checkin-cli/internal/timer"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Two tick cadences: a fast one for smooth countdown display and a 1s one
// that settles the engine and reloads from the store (so CLI commands run in
// another terminal show up). Both are pure recomputation, so coalesced or
// dropped ticks are harmless.
type frameMsg time.Time
type wallMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func wallTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return wallMsg(t) })
}

type appModel struct {
	deps Deps
	key  string

	engine *timer.Engine
	rec    model.DayRecord

	cursor int
	locked bool

	width  int
	height int
	bar    progress.Model
}

func newAppModel(d Deps) appModel {
	key := clock.DateKey(d.Date)
	m := appModel{
		deps:   d,
		key:    key,
		engine: buildEngine(d, key),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.bar.Width = 40
	m.reload()
	return m
}

func buildEngine(d Deps, key string) *timer.Engine {
	// The bell fallback goes to io.Discard: a BEL written mid-frame would
	// end up inside the alt screen.
	var n timer.Notifier = notify.NewDesktop(io.Discard)
	if d.Config.Notify != nil && !*d.Config.Notify {
		n = notify.Silent{}
	}
	opts := []timer.Option{
		timer.WithNotifier(n),
		timer.WithFocusDone(func(taskID string) {
			rec := d.Days.Load(key)
			for i := range rec.Tasks {
				if rec.Tasks[i].ID == taskID {
					rec.Tasks[i].Done = true
					rec.Tasks[i].DonePomos++
					_ = d.Days.Save(key, rec)
					return
				}
			}
		}),
	}
	if mode := model.TimerMode(d.Config.TimerMode); mode.Valid() {
		opts = append(opts, timer.WithDefaultMode(mode))
	}
	return timer.New(store.TimerSlot{M: d.Medium, DateKey: key}, opts...)
}

func (m *appModel) reload() {
	m.rec = m.deps.Days.Load(m.key)
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visible returns today's tasks in display order.
func (m appModel) visible() []model.Task {
	ts := sched.VisibleTasks(m.rec.Tasks, m.deps.Date)
	sched.SortByWindow(ts)
	return ts
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(frameTick(), wallTick())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 12
		if w > 48 {
			w = 48
		}
		if w < 16 {
			w = 16
		}
		m.bar.Width = w
		return m, nil

	case frameMsg:
		// Display refresh only; Remaining() recomputes from the end timestamp.
		return m, frameTick()

	case wallMsg:
		_ = m.engine.Tick()
		m.reload()
		return m, wallTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case " ":
		if m.engine.State().Running {
			_ = m.engine.Pause()
		} else {
			_ = m.engine.Start()
		}
		// Pausing at expiry completes the phase and may auto-complete the
		// bound task.
		m.reload()

	case "r":
		_ = m.engine.Reset()

	case "m":
		next := model.ModeLong
		if m.engine.State().Mode == model.ModeLong {
			next = model.ModeShort
		}
		_ = m.engine.SetMode(next) // ErrBusy while running; ignored

	case "p":
		next := model.PhaseRest
		if m.engine.State().Phase == model.PhaseRest {
			next = model.PhaseFocus
		}
		_ = m.engine.SetPhase(next)

	case "x":
		m.toggleDone()

	case "b":
		if t, ok := m.selected(); ok {
			id := t.ID
			if m.engine.State().BoundTaskID == id {
				id = ""
			}
			_ = m.engine.Bind(id)
		}

	case "l":
		m.locked = !m.locked
	}
	return m, nil
}

func (m *appModel) selected() (model.Task, bool) {
	ts := m.visible()
	if m.cursor < 0 || m.cursor >= len(ts) {
		return model.Task{}, false
	}
	return ts[m.cursor], true
}

func (m *appModel) toggleDone() {
	sel, ok := m.selected()
	if !ok {
		return
	}
	for i := range m.rec.Tasks {
		if m.rec.Tasks[i].ID == sel.ID {
			m.rec.Tasks[i].Done = !m.rec.Tasks[i].Done
			_ = m.deps.Days.Save(m.key, m.rec)
			return
		}
	}
}

func (m appModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render("checkin  " + m.key)
	if m.locked {
		header += "  " + mutedStyle.Render("[locked]")
	}

	sections := []string{header, m.viewTimer(), m.viewTasks(), m.viewFooter()}
	return strings.Join(sections, "\n\n")
}

func (m appModel) viewTimer() string {
	st := m.engine.State()
	remain := m.engine.Remaining()
	full := timer.PhaseDuration(st.Mode, st.Phase)

	status := "paused"
	style := mutedStyle
	if st.Running {
		status = "running"
		style = accentStyle
	}

	pct := 0.0
	if full > 0 {
		pct = 1 - float64(remain)/float64(full)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	lines := []string{
		fmt.Sprintf("%s  %s  %s",
			accentStyle.Render(string(st.Phase)),
			mutedStyle.Render(string(st.Mode)),
			style.Render(status)),
		accentStyle.Render(formatClock(remain)),
		m.bar.ViewAs(pct),
	}
	if st.BoundTaskID != "" {
		title := st.BoundTaskID
		for _, t := range m.rec.Tasks {
			if t.ID == st.BoundTaskID {
				title = t.Title
			}
		}
		lines = append(lines, mutedStyle.Render("bound: "+title))
	}
	return timerBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m appModel) viewTasks() string {
	ts := m.visible()
	if len(ts) == 0 {
		return mutedStyle.Render("  no tasks for this day (checkin tasks add ...)")
	}

	now := time.Now()
	var b strings.Builder
	for i, t := range ts {
		line := "  " + taskLine(t, m.deps.Date, now)
		switch {
		case i == m.cursor && !m.locked:
			line = selectedStyle.Render("> " + taskLine(t, m.deps.Date, now))
		case t.Done:
			line = faintIfDark(doneStyle).Render(line)
		case sched.Overdue(t, m.deps.Date, now):
			line = overdueStyle.Render(line)
		case sched.EnergyMismatch(t):
			line = warnStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) viewFooter() string {
	help := "space start/pause  r reset  m mode  p phase  j/k move  x done  b bind  l lock  q quit"
	if m.locked {
		help = "x check off  l unlock  q quit"
	}
	return mutedStyle.Render(help)
}

// taskLine renders one checklist row without selection styling.
func taskLine(t model.Task, viewDate, now time.Time) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}

	win := "     -     "
	if t.FixedWindow != "" {
		win = t.FixedWindow
	}

	parts := []string{box, win, t.Title}
	for _, badge := range taskBadges(t, viewDate, now) {
		parts = append(parts, badge)
	}
	return strings.Join(parts, "  ")
}

// taskBadges returns the plain-text status markers for a row.
func taskBadges(t model.Task, viewDate, now time.Time) []string {
	var out []string
	if sched.Overdue(t, viewDate, now) {
		out = append(out, "overdue")
	}
	if sched.EnergyMismatch(t) {
		out = append(out, "energy!")
	}
	if t.PlannedPomos > 0 {
		out = append(out, fmt.Sprintf("%d/%d pomos", t.DonePomos, t.PlannedPomos))
	}
	if t.AltDays {
		out = append(out, "alt")
	}
	return out
}

// formatClock renders a countdown as MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
