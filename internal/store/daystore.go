package store

import (
	"encoding/json"
	"time"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"
	"checkin-cli/internal/plan"
)

// SeedPolicy decides what a day record looks like the first time a date is
// read. The source app shipped all three behaviors at different times; which
// one is right is an integrator decision, so it lives in config rather than
// code.
type SeedPolicy string

const (
	// SeedEmpty starts every new day blank.
	SeedEmpty SeedPolicy = "empty"
	// SeedTemplate starts every new day from the fixed template.
	SeedTemplate SeedPolicy = "template"
	// SeedPlan generates the day from the prior day's plan capture.
	SeedPlan SeedPolicy = "plan"
)

func (p SeedPolicy) Valid() bool {
	return p == SeedEmpty || p == SeedTemplate || p == SeedPlan
}

// DayStore reads and writes one DayRecord per calendar date key.
type DayStore struct {
	M    Medium
	Seed SeedPolicy
}

// Load returns the record for a date key, constructing the seed-policy
// default when none exists. Malformed persisted JSON falls back to the
// default record; it is never surfaced as an error.
func (s DayStore) Load(dateKey string) model.DayRecord {
	raw, ok, err := s.M.Get(dayKey(dateKey))
	if err == nil && ok {
		var rec model.DayRecord
		if json.Unmarshal([]byte(raw), &rec) == nil {
			if rec.Tasks == nil {
				rec.Tasks = []model.Task{}
			}
			return rec
		}
	}
	return s.seed(dateKey)
}

// Exists reports whether a record has been persisted for the date key.
func (s DayStore) Exists(dateKey string) bool {
	_, ok, err := s.M.Get(dayKey(dateKey))
	return err == nil && ok
}

// Save overwrites the record for a date key wholesale. Last write wins.
func (s DayStore) Save(dateKey string, rec model.DayRecord) error {
	if rec.Tasks == nil {
		rec.Tasks = []model.Task{}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.M.Set(dayKey(dateKey), string(b))
}

// Clear resets a date to an empty record. Records are otherwise never
// deleted.
func (s DayStore) Clear(dateKey string) error {
	return s.Save(dateKey, model.DayRecord{Tasks: []model.Task{}})
}

// DateKeys returns the date keys of every persisted day record.
func (s DayStore) DateKeys() ([]string, error) {
	keys, err := s.M.Keys()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, k := range keys {
		if dk := dateKeyFromDayKey(k); dk != "" {
			out = append(out, dk)
		}
	}
	return out, nil
}

func (s DayStore) seed(dateKey string) model.DayRecord {
	switch s.Seed {
	case SeedTemplate:
		return model.DayRecord{Tasks: TemplateTasks()}
	case SeedPlan:
		if d, err := clock.ParseDateKey(dateKey); err == nil {
			prevKey := clock.DateKey(d.AddDate(0, 0, -1))
			prev := PlanStore{M: s.M}.Load(model.ScopeDay, prevKey)
			if tasks := plan.GenerateFromPlan(prev); len(tasks) > 0 {
				return model.DayRecord{Tasks: tasks}
			}
		}
		return model.DayRecord{Tasks: []model.Task{}}
	default:
		return model.DayRecord{Tasks: []model.Task{}}
	}
}

// PlanStore reads and writes the per-scope free-text plan captures.
type PlanStore struct {
	M Medium
}

// Load returns the plan for a scope bucket, or the zero record when absent
// or unreadable.
func (s PlanStore) Load(scope model.PlanScope, scopeKey string) model.PlanRecord {
	raw, ok, err := s.M.Get(planKey(scope, scopeKey))
	if err != nil || !ok {
		return model.PlanRecord{}
	}
	var rec model.PlanRecord
	if json.Unmarshal([]byte(raw), &rec) != nil {
		return model.PlanRecord{}
	}
	return rec
}

func (s PlanStore) Save(scope model.PlanScope, scopeKey string, rec model.PlanRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.M.Set(planKey(scope, scopeKey), string(b))
}

// ScopeKey returns the plan bucket key for a scope and anchor date.
func ScopeKey(scope model.PlanScope, anchor time.Time) string {
	switch scope {
	case model.ScopeWeek:
		return clock.ISOWeekKey(anchor)
	case model.ScopeMonth:
		return clock.MonthKey(anchor)
	case model.ScopeYear:
		return clock.YearKey(anchor)
	default:
		return clock.DateKey(anchor)
	}
}
