package model

import (
	"fmt"
	"strconv"
	"strings"
)

type GoalChangeAccess string

const (
	GoalEditable  GoalChangeAccess = "editable"
	GoalDeletable GoalChangeAccess = "deletable"
)

type TrainingGoalType string

const (
	TrainingPerWeek TrainingGoalType = "trainings-per-week"
	TrainingKcal    TrainingGoalType = "trainings-kcal"
)

// Reserved GoalSet keys. Custom goals use KeyCustomGoal plus a numeric suffix.
const (
	KeyDietGoal         = "dietGoal"
	KeyTrainingGoal     = "trainingGoal"
	KeyTrainingGoalType = "trainingGoalType"
	KeySleepGoal        = "sleepGoal"

	customGoalPrefix = "customGoal_"
)

// Goal describes a single trackable goal. Value is nil only for a custom goal
// that has not received its numeric target yet. Type is set only on the
// trainingGoalType entry, which carries the discrete training mode instead of
// a number.
type Goal struct {
	Name         string           `json:"goalName"`
	Value        *int             `json:"goalValue"`
	Type         TrainingGoalType `json:"goalType,omitempty"`
	ChangeAccess GoalChangeAccess `json:"goalChangeAccess"`
}

type GoalEntry struct {
	Key  string `json:"key"`
	Goal Goal   `json:"goal"`
}

// GoalSet is the ordered collection of a user's goals. It is a list of pairs,
// not a map: custom-goal iteration order is the insertion order of their
// suffixes and must survive serialization.
type GoalSet struct {
	Entries    []GoalEntry `json:"entries"`
	NextCustom int         `json:"nextCustomSuffix,omitempty"`
}

func (gs *GoalSet) Get(key string) (Goal, bool) {
	for _, e := range gs.Entries {
		if e.Key == key {
			return e.Goal, true
		}
	}
	return Goal{}, false
}

// Set replaces the goal under key or appends it at the end.
func (gs *GoalSet) Set(key string, g Goal) {
	for i, e := range gs.Entries {
		if e.Key == key {
			gs.Entries[i].Goal = g
			return
		}
	}
	gs.Entries = append(gs.Entries, GoalEntry{Key: key, Goal: g})
}

func (gs *GoalSet) Delete(key string) bool {
	for i, e := range gs.Entries {
		if e.Key == key {
			gs.Entries = append(gs.Entries[:i], gs.Entries[i+1:]...)
			return true
		}
	}
	return false
}

func (gs *GoalSet) Len() int {
	return len(gs.Entries)
}

// Custom returns the custom-goal entries in their stored order.
func (gs *GoalSet) Custom() []GoalEntry {
	var custom []GoalEntry
	for _, e := range gs.Entries {
		if IsCustomKey(e.Key) {
			custom = append(custom, e)
		}
	}
	return custom
}

// NextCustomKey allocates the next custom-goal key. Suffixes are strictly
// increasing and never reused, even after deletions.
func (gs *GoalSet) NextCustomKey() string {
	next := gs.NextCustom
	if next < 1 {
		next = 1
	}
	for _, e := range gs.Entries {
		if suffix, ok := CustomSuffix(e.Key); ok && suffix >= next {
			next = suffix + 1
		}
	}
	gs.NextCustom = next + 1
	return CustomKey(next)
}

// TrainingType reports the configured training mode, defaulting to per-week
// when the entry is absent.
func (gs *GoalSet) TrainingType() TrainingGoalType {
	if g, ok := gs.Get(KeyTrainingGoalType); ok && g.Type != "" {
		return g.Type
	}
	return TrainingPerWeek
}

func CustomKey(suffix int) string {
	return fmt.Sprintf("%s%d", customGoalPrefix, suffix)
}

func IsCustomKey(key string) bool {
	_, ok := CustomSuffix(key)
	return ok
}

func CustomSuffix(key string) (int, bool) {
	if !strings.HasPrefix(key, customGoalPrefix) {
		return 0, false
	}
	suffix, err := strconv.Atoi(strings.TrimPrefix(key, customGoalPrefix))
	if err != nil || suffix < 1 {
		return 0, false
	}
	return suffix, true
}

func IntPtr(v int) *int {
	return &v
}
