// Package sched contains the task scheduling rules: display ordering,
// overdue detection, energy-band advisories, alternate-day visibility and
// plan-injection dedup.
package sched

import (
	"sort"
	"strings"
	"time"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"
)

// EnergyLevel is the qualitative energy attributed to a time band.
type EnergyLevel string

const (
	EnergyHigh    EnergyLevel = "high"
	EnergyMid     EnergyLevel = "mid"
	EnergyLow     EnergyLevel = "low"
	EnergyUnknown EnergyLevel = "unknown"
)

// The three fixed, non-overlapping bands. Times outside all bands classify
// as unknown.
var energyBands = []struct {
	start, end int // minutes since midnight, [start, end)
	level      EnergyLevel
}{
	{6 * 60, 12 * 60, EnergyHigh}, // morning
	{12 * 60, 18 * 60, EnergyMid}, // afternoon
	{18 * 60, 23 * 60, EnergyLow}, // evening
}

// EnergyBandFor classifies a minutes-since-midnight value.
func EnergyBandFor(minutes int) EnergyLevel {
	for _, b := range energyBands {
		if minutes >= b.start && minutes < b.end {
			return b.level
		}
	}
	return EnergyUnknown
}

// EnergyMismatch reports whether a task deserves the advisory "important
// work scheduled at low energy" warning. It never blocks anything.
func EnergyMismatch(t model.Task) bool {
	if !t.Priority.Important() {
		return false
	}
	if strings.TrimSpace(t.FixedWindow) == "" {
		return false
	}
	switch EnergyBandFor(clock.WindowStart(t.FixedWindow)) {
	case EnergyLow, EnergyUnknown:
		return true
	}
	return false
}

// Overdue reports whether a task has blown past its window. Only tasks with
// a window, viewed on the current day, undone, with wall-clock now beyond
// the window end, are overdue; any other view of the task is not.
func Overdue(t model.Task, viewDate time.Time, now time.Time) bool {
	if t.Done {
		return false
	}
	if strings.TrimSpace(t.FixedWindow) == "" {
		return false
	}
	if clock.DateKey(viewDate) != clock.DateKey(now) {
		return false
	}
	return clock.MinutesOfDay(now) > clock.WindowEnd(t.FixedWindow)
}

// VisibleOn reports whether a task belongs in the visible set for a date.
// AltDays tasks appear only on even-numbered days of the month; the rule is
// a pure modulus on the date, so it needs no history and is idempotent.
func VisibleOn(t model.Task, date time.Time) bool {
	if !t.AltDays {
		return true
	}
	return date.Day()%2 == 0
}

// VisibleTasks filters a day's tasks down to the visible set for a date,
// preserving order.
func VisibleTasks(tasks []model.Task, date time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if VisibleOn(t, date) {
			out = append(out, t)
		}
	}
	return out
}

// SortByWindow orders tasks for display: by window start, windowless tasks
// last, stable among equals.
func SortByWindow(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return clock.CompareWindows(tasks[i].FixedWindow, tasks[j].FixedWindow) < 0
	})
}

// MergeDrafts injects parsed drafts into an existing task list. A draft is
// admitted only if no existing task has the identical trimmed title
// (case-sensitive exact match). This drops legitimately distinct same-titled
// tasks too; that is a known limitation of the injection contract, kept
// deliberately. Returns the merged list and how many drafts were added.
func MergeDrafts(existing []model.Task, drafts []model.Task) ([]model.Task, int) {
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[strings.TrimSpace(t.Title)] = true
	}

	out := existing
	added := 0
	for _, d := range drafts {
		key := strings.TrimSpace(d.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
		added++
	}
	return out, added
}

// Normalize enforces the task invariants that survive arbitrary edits:
// non-empty title, positive minutes (window-derived when unset), valid
// priority.
func Normalize(t model.Task) model.Task {
	if strings.TrimSpace(t.Title) == "" {
		t.Title = model.PlaceholderTitle
	}
	if t.Minutes <= 0 {
		t.Minutes = clock.WindowSpan(t.FixedWindow)
	}
	if t.Minutes < model.MinMinutes {
		t.Minutes = model.MinMinutes
	}
	if !t.Priority.Valid() {
		t.Priority = model.PriorityImportantNotUrgent
	}
	return t
}
