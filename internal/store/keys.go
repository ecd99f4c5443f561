package store

import (
	"strings"

	"checkin-cli/internal/model"
)

// Key prefixes in the kv medium. These are part of the on-disk contract.
const (
	dayKeyPrefix   = "dc-"
	planKeyPrefix  = "plan-"
	timerKeyPrefix = "pomo-state-"
	goalsKey       = "goals-v1"
)

func dayKey(dateKey string) string { return dayKeyPrefix + dateKey }

func planKey(scope model.PlanScope, scopeKey string) string {
	return planKeyPrefix + string(scope) + "-" + scopeKey
}

func timerKey(dateKey string) string { return timerKeyPrefix + dateKey }

// dateKeyFromDayKey extracts the "YYYY-MM-DD" part from a day record key,
// or "" when the key is not a day record key.
func dateKeyFromDayKey(key string) string {
	if !strings.HasPrefix(key, dayKeyPrefix) {
		return ""
	}
	return key[len(dayKeyPrefix):]
}
