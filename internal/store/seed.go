package store

import (
	"checkin-cli/internal/model"

	"github.com/google/uuid"
)

// TemplateTasks is the fixed seed used by SeedTemplate: a minimal morning
// routine to anchor the day. Fresh ids per day.
func TemplateTasks() []model.Task {
	mk := func(window, section, title string, minutes int, prio model.Priority) model.Task {
		return model.Task{
			ID:          uuid.NewString(),
			Title:       title,
			Section:     section,
			FixedWindow: window,
			Minutes:     minutes,
			Priority:    prio,
		}
	}
	return []model.Task{
		mk("08:30-08:45", "input", "Review yesterday + set top 3", 15, model.PriorityImportantUrgent),
		mk("09:00-09:50", "core output", "Deep work block", 50, model.PriorityImportantNotUrgent),
		mk("12:30-12:45", "trend watch", "Scan feeds", 15, model.PriorityNotImportantNotUrgent),
		mk("21:30-21:45", "learning", "Evening review", 15, model.PriorityImportantNotUrgent),
	}
}
