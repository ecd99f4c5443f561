package store

import (
	"encoding/json"

	"checkin-cli/internal/model"
)

// TimerSlot is the per-day persistence slot for the timer engine.
type TimerSlot struct {
	M       Medium
	DateKey string
}

// Load rehydrates the persisted timer state for the slot's day.
// Missing or malformed state reads as absent.
func (s TimerSlot) Load() (model.TimerState, bool) {
	raw, ok, err := s.M.Get(timerKey(s.DateKey))
	if err != nil || !ok {
		return model.TimerState{}, false
	}
	var st model.TimerState
	if json.Unmarshal([]byte(raw), &st) != nil {
		return model.TimerState{}, false
	}
	if !st.Mode.Valid() || !st.Phase.Valid() {
		return model.TimerState{}, false
	}
	return st, true
}

func (s TimerSlot) Save(st model.TimerState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.M.Set(timerKey(s.DateKey), string(b))
}
