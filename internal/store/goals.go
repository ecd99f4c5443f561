package store

import (
	"encoding/json"
	"strings"

	"checkin-cli/internal/model"

	"github.com/google/uuid"
)

// GoalStore holds the process-wide goals list (singleton key, not scoped to
// any day).
type GoalStore struct {
	M Medium
}

// Load returns all goals. Missing or malformed state reads as empty.
func (s GoalStore) Load() []model.Goal {
	raw, ok, err := s.M.Get(goalsKey)
	if err != nil || !ok {
		return []model.Goal{}
	}
	var goals []model.Goal
	if json.Unmarshal([]byte(raw), &goals) != nil || goals == nil {
		return []model.Goal{}
	}
	return goals
}

func (s GoalStore) Save(goals []model.Goal) error {
	if goals == nil {
		goals = []model.Goal{}
	}
	b, err := json.Marshal(goals)
	if err != nil {
		return err
	}
	return s.M.Set(goalsKey, string(b))
}

// Add creates and persists a new goal.
func (s GoalStore) Add(title, desc string) (model.Goal, error) {
	g := model.Goal{ID: uuid.NewString(), Title: strings.TrimSpace(title), Desc: strings.TrimSpace(desc)}
	goals := append(s.Load(), g)
	return g, s.Save(goals)
}

// Remove deletes a goal by id. Unknown ids are a no-op; tasks still pointing
// at the id simply resolve to no goal.
func (s GoalStore) Remove(id string) error {
	goals := s.Load()
	out := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return s.Save(out)
}

// Resolve looks up a goal by id. Dangling and empty ids read as absent;
// referential integrity is never assumed.
func (s GoalStore) Resolve(id string) (model.Goal, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Goal{}, false
	}
	for _, g := range s.Load() {
		if g.ID == id {
			return g, true
		}
	}
	return model.Goal{}, false
}
