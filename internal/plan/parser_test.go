package plan

import (
	"fmt"
	"testing"

	"checkin-cli/internal/model"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		window  string
		title   string
		output  string
		minutes int
	}{
		{"window arrow output", "[09:00-09:25] Draft intro → 500 words", "09:00-09:25", "Draft intro", "500 words", 25},
		{"ascii arrow fallback", "[10:00-10:30] Draft -> 500 words", "10:00-10:30", "Draft", "500 words", 30},
		{"no window", "Review inbox", "", "Review inbox", "", 25},
		{"no output", "[08:00-08:50] Deep work", "08:00-08:50", "Deep work", "", 50},
		{"empty title placeholder", "[09:00-09:25] → just output", "09:00-09:25", model.PlaceholderTitle, "just output", 25},
		{"fullwidth wins over ascii", "a → b -> c", "", "a", "b -> c", 25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseLine(c.line)
			if !ok {
				t.Fatalf("ParseLine(%q) not ok", c.line)
			}
			if got.FixedWindow != c.window || got.Title != c.title || got.Output != c.output {
				t.Errorf("got (%q, %q, %q), want (%q, %q, %q)",
					got.FixedWindow, got.Title, got.Output, c.window, c.title, c.output)
			}
			if got.Minutes != c.minutes {
				t.Errorf("minutes = %d, want %d", got.Minutes, c.minutes)
			}
			if got.Priority != model.PriorityImportantNotUrgent {
				t.Errorf("priority = %q, want default", got.Priority)
			}
			if got.ID == "" {
				t.Error("missing id")
			}
			if got.Done {
				t.Error("draft should not be done")
			}
		})
	}
}

func TestParseLineBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		if _, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) should yield nothing", line)
		}
	}
}

// Re-parsing the serialized draft format reproduces the same tuple.
func TestParseLineIdempotent(t *testing.T) {
	first, ok := ParseLine("[09:00-09:25] Title → Output")
	if !ok {
		t.Fatal("parse failed")
	}
	serialized := fmt.Sprintf("[%s] %s → %s", first.FixedWindow, first.Title, first.Output)
	second, ok := ParseLine(serialized)
	if !ok {
		t.Fatal("re-parse failed")
	}
	if first.FixedWindow != second.FixedWindow || first.Title != second.Title || first.Output != second.Output {
		t.Errorf("round trip changed tuple: (%q,%q,%q) vs (%q,%q,%q)",
			first.FixedWindow, first.Title, first.Output,
			second.FixedWindow, second.Title, second.Output)
	}
}

func TestParseText(t *testing.T) {
	text := "[09:00-09:25] One\n\nTwo\n   \n[10:00-10:30] Three → out\n"
	tasks := ParseText(text)
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	if tasks[0].Title != "One" || tasks[1].Title != "Two" || tasks[2].Title != "Three" {
		t.Errorf("unexpected titles: %q %q %q", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestGenerateFromPlanPromotesTop3(t *testing.T) {
	rec := model.PlanRecord{
		Top3: "Finish the launch draft\nShip  release\nCall accountant\nIgnored fourth line mentions Inbox",
		Must: "[09:00-09:50] launch draft\nReview inbox\nShip release\nInbox",
	}
	tasks := GenerateFromPlan(rec)
	if len(tasks) != 4 {
		t.Fatalf("got %d tasks, want 4", len(tasks))
	}
	if tasks[0].Priority != model.PriorityImportantUrgent {
		t.Error("substring of top3 line should be promoted")
	}
	if tasks[1].Priority != model.PriorityImportantNotUrgent {
		t.Error("unmatched task should keep default priority")
	}
	if tasks[2].Priority != model.PriorityImportantUrgent {
		t.Error("whitespace-insensitive match should promote")
	}
	if tasks[3].Priority != model.PriorityImportantNotUrgent {
		t.Error("only the first three top3 lines participate")
	}
}
