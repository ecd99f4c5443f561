// Package tui is the interactive day dashboard: the focus/rest timer plus
// today's task checklist, kept in sync with CLI commands running in other
// terminals by reloading from the store on every wall-clock tick.
package tui

import (
	"time"

	"checkin-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps carries everything the dashboard needs; the CLI wires it up so the
// TUI never re-opens the database or re-reads config on its own.
type Deps struct {
	Medium store.Medium
	Days   store.DayStore
	Goals  store.GoalStore
	Date   time.Time
	Config store.GlobalConfig
}

func Run(d Deps) error {
	applyColorProfile()
	m := newAppModel(d)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
