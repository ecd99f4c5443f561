// Package stats answers "how did I do this day/week/month/year" by scanning
// every persisted day record and reducing the scoped slice.
package stats

import (
	"math"
	"sort"
	"time"

	"checkin-cli/internal/clock"
	"checkin-cli/internal/model"
	"checkin-cli/internal/store"
)

// Stats is the aggregate for one scope bucket.
type Stats struct {
	Scope model.PlanScope `json:"scope"`
	Key   string          `json:"key"`

	Total       int `json:"total"`
	Done        int `json:"done"`
	Rate        int `json:"rate"` // round(done*100/total), 0 when total is 0
	DoneMinutes int `json:"doneMinutes"`

	BySection  map[string]int `json:"bySection"`
	ByPriority map[string]int `json:"byPriority"`
	// ByGoal counts done tasks per referenced goal id.
	ByGoal map[string]int `json:"byGoal"`
}

// Row is one exported task with its day's date key attached.
type Row struct {
	Date        string `json:"date"`
	Section     string `json:"section"`
	Title       string `json:"title"`
	Output      string `json:"output"`
	Minutes     int    `json:"minutes"`
	Done        bool   `json:"done"`
	FixedWindow string `json:"fixedWindow"`
	Remark      string `json:"remark"`
	Priority    string `json:"priority"`
	GoalID      string `json:"goalId"`
}

// BucketKey returns the scope bucket an anchor date falls in.
func BucketKey(scope model.PlanScope, anchor time.Time) string {
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

func inBucket(scope model.PlanScope, dateKey, bucket string) bool {
	d, err := clock.ParseDateKey(dateKey)
	if err != nil {
		return false
	}
	return BucketKey(scope, d) == bucket
}

// Aggregate reduces every persisted day record in the anchor's scope bucket.
func Aggregate(days store.DayStore, scope model.PlanScope, anchor time.Time) (Stats, error) {
	out := Stats{
		Scope:      scope,
		Key:        BucketKey(scope, anchor),
		BySection:  map[string]int{},
		ByPriority: map[string]int{},
		ByGoal:     map[string]int{},
	}

	keys, err := days.DateKeys()
	if err != nil {
		return out, err
	}
	for _, dk := range keys {
		if !inBucket(scope, dk, out.Key) {
			continue
		}
		rec := days.Load(dk)
		for _, t := range rec.Tasks {
			out.Total++
			out.BySection[t.Section]++
			if t.Priority.Valid() {
				out.ByPriority[string(t.Priority)]++
			}
			if t.Done {
				out.Done++
				out.DoneMinutes += taskMinutes(t)
				if t.GoalID != "" {
					out.ByGoal[t.GoalID]++
				}
			}
		}
	}

	if out.Total > 0 {
		out.Rate = int(math.Round(float64(out.Done) * 100 / float64(out.Total)))
	}
	return out, nil
}

// Rows returns the scoped raw task rows for export, ordered by date then
// window.
func Rows(days store.DayStore, scope model.PlanScope, anchor time.Time) ([]Row, error) {
	bucket := BucketKey(scope, anchor)

	keys, err := days.DateKeys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	var out []Row
	for _, dk := range keys {
		if !inBucket(scope, dk, bucket) {
			continue
		}
		rec := days.Load(dk)
		tasks := append([]model.Task(nil), rec.Tasks...)
		sort.SliceStable(tasks, func(i, j int) bool {
			return clock.CompareWindows(tasks[i].FixedWindow, tasks[j].FixedWindow) < 0
		})
		for _, t := range tasks {
			out = append(out, Row{
				Date:        dk,
				Section:     t.Section,
				Title:       t.Title,
				Output:      t.Output,
				Minutes:     taskMinutes(t),
				Done:        t.Done,
				FixedWindow: t.FixedWindow,
				Remark:      t.Remark,
				Priority:    string(t.Priority),
				GoalID:      t.GoalID,
			})
		}
	}
	return out, nil
}

func taskMinutes(t model.Task) int {
	if t.Minutes > 0 {
		return t.Minutes
	}
	return clock.WindowSpan(t.FixedWindow)
}
