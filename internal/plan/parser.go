// Package plan turns free-text plan lines into task drafts.
//
// Line syntax (one task per line, blank lines ignored):
//
//	[09:00-09:25] Draft intro → 500 words
//
// The leading bracketed window and the "produces" arrow are both optional.
package plan

import (
	"regexp"
	"strings"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"

	"github.com/google/uuid"
)

// Produces delimiters: the full-width arrow is the canonical token; the
// ASCII arrow is accepted as a fallback when the full-width one is absent.
const (
	arrowFullWidth = "→"
	arrowASCII     = "->"
)

// top3PromoteLines is how many leading top3 lines participate in the
// promotion heuristic when generating a day from a plan. The match is a
// whitespace-insensitive substring check, deliberately fuzzy.
const top3PromoteLines = 3

var windowPrefix = regexp.MustCompile(`^\[(\d{1,2}:\d{2}-\d{1,2}:\d{2})\]\s*`)

// ParseLine converts one line of free text into a task draft. Blank lines
// yield ok=false.
func ParseLine(line string) (model.Task, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Task{}, false
	}

	var window string
	if m := windowPrefix.FindStringSubmatch(line); m != nil {
		window = m[1]
		line = strings.TrimSpace(line[len(m[0]):])
	}

	title := line
	output := ""
	if i := strings.Index(line, arrowFullWidth); i >= 0 {
		title = line[:i]
		output = line[i+len(arrowFullWidth):]
	} else if i := strings.Index(line, arrowASCII); i >= 0 {
		title = line[:i]
		output = line[i+len(arrowASCII):]
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = model.PlaceholderTitle
	}

	return model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		FixedWindow: window,
		Minutes:     clock.WindowSpan(window),
		Output:      strings.TrimSpace(output),
		Priority:    model.PriorityImportantNotUrgent,
	}, true
}

// ParseText parses a multi-line plan textarea into task drafts.
func ParseText(text string) []model.Task {
	var out []model.Task
	for _, line := range strings.Split(text, "\n") {
		if t, ok := ParseLine(line); ok {
			out = append(out, t)
		}
	}
	return out
}

// GenerateFromPlan builds a day's task drafts from a prior plan capture.
// Drafts come from the plan's must lines; a draft whose title matches one of
// the first three top3 lines (whitespace-insensitive substring) is promoted
// to the important-urgent quadrant.
func GenerateFromPlan(rec model.PlanRecord) []model.Task {
	drafts := ParseText(rec.Must)

	var top3 []string
	for _, line := range strings.Split(rec.Top3, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		top3 = append(top3, squashSpace(line))
		if len(top3) >= top3PromoteLines {
			break
		}
	}

	for i := range drafts {
		title := squashSpace(drafts[i].Title)
		if title == "" {
			continue
		}
		for _, t3 := range top3 {
			if strings.Contains(t3, title) {
				drafts[i].Priority = model.PriorityImportantUrgent
				break
			}
		}
	}
	return drafts
}

func squashSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
