package clock

import (
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"23:59", 1439},
		{" 07:30 ", 450},
		{"9", 540},    // missing minutes -> 0
		{":45", 45},   // missing hours -> 0
		{"", 0},       // empty -> 0
		{"abc", 0},    // garbage -> 0
		{"ab:cd", 0},  // garbage components -> 0
		{"10:xx", 600}, // bad minutes only
	}
	for _, c := range cases {
		if got := ToMinutes(c.in); got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestWindowSpan(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"09:00-09:25", 25},
		{"09:00-10:30", 90},
		{"", DefaultSpanMinutes},
		{"garbage", DefaultSpanMinutes},
		{"10:00-09:00", DefaultSpanMinutes}, // end before start degrades
		{"09:00-09:00", DefaultSpanMinutes}, // zero-length degrades
		{"09:00-09:03", MinSpanMinutes},     // tiny windows clamp up
	}
	for _, c := range cases {
		if got := WindowSpan(c.in); got != c.want {
			t.Errorf("WindowSpan(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestWindowSpanMatchesEndMinusStart(t *testing.T) {
	windows := []string{"08:00-08:05", "09:00-09:25", "13:15-14:45", "22:00-23:59"}
	for _, w := range windows {
		span := WindowSpan(w)
		if span < MinSpanMinutes {
			t.Errorf("WindowSpan(%q) = %d, below minimum", w, span)
		}
		if want := WindowEnd(w) - WindowStart(w); span != want {
			t.Errorf("WindowSpan(%q) = %d, want end-start = %d", w, span, want)
		}
	}
}

func TestCompareWindows(t *testing.T) {
	if CompareWindows("09:00-09:25", "10:00-10:25") >= 0 {
		t.Error("earlier window should sort first")
	}
	if CompareWindows("09:00-09:25", "") >= 0 {
		t.Error("windowed task should sort before windowless")
	}
	if CompareWindows("", "23:00-23:30") <= 0 {
		t.Error("windowless task should sort after windowed")
	}
	if CompareWindows("", "") != 0 {
		t.Error("two windowless tasks should compare equal (stable order)")
	}
}

func TestDateKeys(t *testing.T) {
	d := time.Date(2025, 3, 9, 14, 30, 0, 0, time.Local)
	if got := DateKey(d); got != "2025-03-09" {
		t.Errorf("DateKey = %q", got)
	}
	if got := MonthKey(d); got != "2025-03" {
		t.Errorf("MonthKey = %q", got)
	}
	if got := YearKey(d); got != "2025" {
		t.Errorf("YearKey = %q", got)
	}
}

func TestISOWeekKey(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-01-01", "2025-W01"}, // Wednesday, week containing first Thursday
		{"2024-12-30", "2025-W01"}, // Monday belongs to next ISO year
		{"2021-01-01", "2020-W53"}, // Friday belongs to previous ISO year
		{"2025-03-09", "2025-W10"},
	}
	for _, c := range cases {
		d, err := ParseDateKey(c.date)
		if err != nil {
			t.Fatalf("ParseDateKey(%q): %v", c.date, err)
		}
		if got := ISOWeekKey(d); got != c.want {
			t.Errorf("ISOWeekKey(%s) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	d, err := ParseDateKey("2025-08-29")
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if got := DateKey(d); got != "2025-08-29" {
		t.Errorf("round trip = %q", got)
	}
	if _, err := ParseDateKey("not-a-date"); err == nil {
		t.Error("expected error for malformed key")
	}
}
