package model

// Priority is one of the four Eisenhower quadrant codes.
type Priority string

const (
	PriorityImportantUrgent       Priority = "important-urgent"
	PriorityImportantNotUrgent    Priority = "important-not-urgent"
	PriorityNotImportantUrgent    Priority = "not-important-urgent"
	PriorityNotImportantNotUrgent Priority = "not-important-not-urgent"
)

// Priorities lists the four quadrant codes in display order.
func Priorities() []Priority {
	return []Priority{
		PriorityImportantUrgent,
		PriorityImportantNotUrgent,
		PriorityNotImportantUrgent,
		PriorityNotImportantNotUrgent,
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityImportantUrgent, PriorityImportantNotUrgent,
		PriorityNotImportantUrgent, PriorityNotImportantNotUrgent:
		return true
	}
	return false
}

// Important reports whether the quadrant is one of the two "important" ones.
func (p Priority) Important() bool {
	return p == PriorityImportantUrgent || p == PriorityImportantNotUrgent
}

// Task is one schedulable unit of work for a given day.
type Task struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`

	// FixedWindow is an optional "HH:MM-HH:MM" slot. Empty means unscheduled;
	// unscheduled tasks sort after every scheduled one.
	FixedWindow string `json:"fixedWindow,omitempty"`

	// Minutes is the effort estimate. Always >= 5; derived from the window
	// span when not set explicitly.
	Minutes int `json:"minutes"`

	Output   string   `json:"output,omitempty"`
	Priority Priority `json:"priority"`
	Done     bool     `json:"done"`
	Remark   string   `json:"remark,omitempty"`

	// AltDays restricts visibility to even-numbered days of the month.
	AltDays bool `json:"altDays,omitempty"`

	// GoalID is a weak reference; a dangling id reads as "no goal".
	GoalID string `json:"goalId,omitempty"`

	PlannedPomos int `json:"plannedPomos,omitempty"`
	DonePomos    int `json:"donePomos,omitempty"`
}

// PlaceholderTitle is substituted when a task has no usable title.
const PlaceholderTitle = "untitled task"

// MinMinutes is the floor for any task estimate.
const MinMinutes = 5

// Goal is a long-lived label a task may reference. Goals live in a single
// cross-day store, not inside any DayRecord.
type Goal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
}

// DayRecord is the unit of persistence: one per calendar date key.
// Task order in Tasks is insertion order; display order is always recomputed
// by sorting on FixedWindow.
type DayRecord struct {
	Tasks []Task `json:"tasks"`
	Notes string `json:"notes,omitempty"`
}

// PlanScope identifies one of the four plan horizons.
type PlanScope string

const (
	ScopeDay   PlanScope = "day"
	ScopeWeek  PlanScope = "week"
	ScopeMonth PlanScope = "month"
	ScopeYear  PlanScope = "year"
)

func Scopes() []PlanScope {
	return []PlanScope{ScopeDay, ScopeWeek, ScopeMonth, ScopeYear}
}

func (s PlanScope) Valid() bool {
	switch s {
	case ScopeDay, ScopeWeek, ScopeMonth, ScopeYear:
		return true
	}
	return false
}

// PlanRecord is a per-scope free-text capture. It has no derived invariants;
// it is only an input source for generating tasks.
type PlanRecord struct {
	Top3  string `json:"top3,omitempty"`
	Must  string `json:"must,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// TimerMode selects one of the two fixed focus/rest cycles.
type TimerMode string

const (
	ModeShort TimerMode = "short" // 25 min focus / 5 min rest
	ModeLong  TimerMode = "long"  // 50 min focus / 10 min rest
)

func (m TimerMode) Valid() bool { return m == ModeShort || m == ModeLong }

// TimerPhase is the side of the cycle the timer is in.
type TimerPhase string

const (
	PhaseFocus TimerPhase = "focus"
	PhaseRest  TimerPhase = "rest"
)

func (p TimerPhase) Valid() bool { return p == PhaseFocus || p == PhaseRest }

// TimerState is the persisted singleton-per-day timer snapshot.
//
// EndAt is authoritative while running: remaining time is always recomputed
// from EndAt minus now, never from a decrementing counter, so the countdown
// survives process suspension and restarts.
type TimerState struct {
	Mode    TimerMode  `json:"mode"`
	Phase   TimerPhase `json:"phase"`
	Running bool       `json:"running"`

	// EndAt is the absolute completion timestamp (unix ms), set on start.
	EndAt int64 `json:"endAt,omitempty"`

	// RemainMs is the frozen remaining duration while paused. On start it is
	// converted back into a fresh EndAt, so pause/resume preserves exact
	// remaining time.
	RemainMs int64 `json:"remainMs,omitempty"`

	// BoundTaskID is a weak reference to the task auto-completed when a
	// focus phase finishes.
	BoundTaskID string `json:"boundTaskId,omitempty"`
}
