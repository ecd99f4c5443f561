// Package clock holds the pure time helpers shared by the scheduler,
// parser, stores and aggregation: clock-string arithmetic and calendar
// bucket keys.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSpanMinutes is the span assumed for absent or malformed windows.
const DefaultSpanMinutes = 25

// MinSpanMinutes is the floor for any window span.
const MinSpanMinutes = 5

// sentinelWindow is the window a task without one is treated as having for
// ordering purposes, so unscheduled tasks sort after every scheduled one.
const sentinelWindow = "23:59-23:59"

// ToMinutes parses "HH:MM" into minutes since midnight. Malformed input is
// not an error: a missing or unparsable component reads as zero, so "9",
// ":30" and garbage degrade instead of failing.
func ToMinutes(hhmm string) int {
	h, m := splitClock(hhmm)
	return h*60 + m
}

func splitClock(hhmm string) (h, m int) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) > 0 {
		h, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		m, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return h, m
}

// WindowStart returns the start of a "HH:MM-HH:MM" window in minutes since
// midnight (0 when the window is absent or malformed).
func WindowStart(window string) int {
	start, _, ok := splitWindow(window)
	if !ok {
		return 0
	}
	return start
}

// WindowEnd returns the end of a window in minutes since midnight
// (0 when absent or malformed).
func WindowEnd(window string) int {
	_, end, ok := splitWindow(window)
	if !ok {
		return 0
	}
	return end
}

// WindowSpan returns the window length in minutes. Absent or malformed
// windows (including end <= start) yield DefaultSpanMinutes; well-formed
// ones are clamped to at least MinSpanMinutes.
func WindowSpan(window string) int {
	start, end, ok := splitWindow(window)
	if !ok || end <= start {
		return DefaultSpanMinutes
	}
	span := end - start
	if span < MinSpanMinutes {
		return MinSpanMinutes
	}
	return span
}

func splitWindow(window string) (start, end int, ok bool) {
	window = strings.TrimSpace(window)
	if window == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	return ToMinutes(parts[0]), ToMinutes(parts[1]), true
}

// CompareWindows orders two window strings for display. A missing window is
// treated as "23:59-23:59" so it sorts after everything scheduled; equal
// keys compare as 0, which keeps sorts stable among windowless tasks.
func CompareWindows(a, b string) int {
	ka := windowSortKey(a)
	kb := windowSortKey(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

func windowSortKey(window string) int {
	if strings.TrimSpace(window) == "" {
		window = sentinelWindow
	}
	return WindowStart(window)
}

// DateKey formats a date as "YYYY-MM-DD", the key of one DayRecord.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// MonthKey formats a date as "YYYY-MM".
func MonthKey(t time.Time) string { return t.Format("2006-01") }

// YearKey formats a date as "YYYY".
func YearKey(t time.Time) string { return t.Format("2006") }

// ISOWeekKey formats a date as "YYYY-Www" per ISO-8601 week numbering
// (weeks start Monday; week 1 contains the year's first Thursday). Note the
// ISO year can differ from the calendar year around January 1st.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseDateKey parses a "YYYY-MM-DD" key back into a local-time date.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(key), time.Local)
}

// MinutesOfDay returns minutes since local midnight for t.
func MinutesOfDay(t time.Time) int { return t.Hour()*60 + t.Minute() }
