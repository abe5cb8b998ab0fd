package model

import (
	"encoding/json"
	"testing"
)

func TestGoalSetKeepsInsertionOrder(t *testing.T) {
	gs := &GoalSet{}
	gs.Set(KeyDietGoal, Goal{Name: "diet", Value: IntPtr(2000), ChangeAccess: GoalEditable})
	gs.Set(KeySleepGoal, Goal{Name: "sleep", Value: IntPtr(8), ChangeAccess: GoalEditable})
	gs.Set(CustomKey(2), Goal{Name: "reading", Value: IntPtr(30), ChangeAccess: GoalDeletable})
	gs.Set(CustomKey(10), Goal{Name: "water", Value: IntPtr(2), ChangeAccess: GoalDeletable})

	custom := gs.Custom()
	if len(custom) != 2 {
		t.Fatalf("expected 2 custom goals, got %d", len(custom))
	}
	// insertion order of suffixes, not lexical order of keys
	if custom[0].Key != "customGoal_2" || custom[1].Key != "customGoal_10" {
		t.Errorf("unexpected custom order: %s, %s", custom[0].Key, custom[1].Key)
	}
}

func TestGoalSetJSONRoundTripPreservesOrder(t *testing.T) {
	gs := &GoalSet{}
	gs.Set(KeyDietGoal, Goal{Name: "diet", Value: IntPtr(2000), ChangeAccess: GoalEditable})
	gs.Set(CustomKey(3), Goal{Name: "reading", Value: IntPtr(30), ChangeAccess: GoalDeletable})
	gs.Set(CustomKey(1), Goal{Name: "water", Value: IntPtr(2), ChangeAccess: GoalDeletable})

	raw, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded := &GoalSet{}
	if err := json.Unmarshal(raw, decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decoded.Entries) != len(gs.Entries) {
		t.Fatalf("expected %d entries, got %d", len(gs.Entries), len(decoded.Entries))
	}
	for i := range gs.Entries {
		if decoded.Entries[i].Key != gs.Entries[i].Key {
			t.Errorf("entry %d: expected key %s, got %s", i, gs.Entries[i].Key, decoded.Entries[i].Key)
		}
	}
}

func TestNextCustomKeySuffixesNeverReused(t *testing.T) {
	gs := &GoalSet{}
	if key := gs.NextCustomKey(); key != "customGoal_1" {
		t.Fatalf("expected customGoal_1, got %s", key)
	}
	gs.Set("customGoal_1", Goal{Name: "a", Value: IntPtr(1), ChangeAccess: GoalDeletable})
	gs.Set(gs.NextCustomKey(), Goal{Name: "b", Value: IntPtr(2), ChangeAccess: GoalDeletable})
	gs.Set(gs.NextCustomKey(), Goal{Name: "c", Value: IntPtr(3), ChangeAccess: GoalDeletable})

	if !gs.Delete("customGoal_2") {
		t.Fatal("delete failed")
	}
	if key := gs.NextCustomKey(); key != "customGoal_4" {
		t.Errorf("expected customGoal_4 after deleting customGoal_2, got %s", key)
	}

	// deleting the current maximum must not roll the counter back
	gs.Delete("customGoal_3")
	if key := gs.NextCustomKey(); key != "customGoal_5" {
		t.Errorf("expected customGoal_5 after deleting the max suffix, got %s", key)
	}
}

func TestCustomSuffix(t *testing.T) {
	cases := []struct {
		key    string
		suffix int
		ok     bool
	}{
		{"customGoal_1", 1, true},
		{"customGoal_42", 42, true},
		{"customGoal_", 0, false},
		{"customGoal_x", 0, false},
		{"dietGoal", 0, false},
	}
	for _, c := range cases {
		suffix, ok := CustomSuffix(c.key)
		if ok != c.ok || suffix != c.suffix {
			t.Errorf("CustomSuffix(%q) = %d, %v; expected %d, %v", c.key, suffix, ok, c.suffix, c.ok)
		}
	}
}

func TestTrainingTypeDefaultsToPerWeek(t *testing.T) {
	gs := &GoalSet{}
	if gs.TrainingType() != TrainingPerWeek {
		t.Errorf("expected default %s, got %s", TrainingPerWeek, gs.TrainingType())
	}
	gs.Set(KeyTrainingGoalType, Goal{Name: "type", Type: TrainingKcal, ChangeAccess: GoalEditable})
	if gs.TrainingType() != TrainingKcal {
		t.Errorf("expected %s, got %s", TrainingKcal, gs.TrainingType())
	}
}
