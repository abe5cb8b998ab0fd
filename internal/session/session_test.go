package session

import (
	"sync"
	"testing"

	"telegram-habit-bot/internal/model"
)

func TestStoreReturnsSameSessionPerUser(t *testing.T) {
	st := NewStore()
	a := st.Get(1)
	b := st.Get(1)
	if a != b {
		t.Error("expected the same session for one user")
	}
	if st.Get(2) == a {
		t.Error("expected distinct sessions for distinct users")
	}
}

func TestTryAcquireDropsConcurrentAction(t *testing.T) {
	s := &Session{}
	if !s.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if s.TryAcquire() {
		t.Error("second acquire should fail while the first is held")
	}
	s.Release()
	if !s.TryAcquire() {
		t.Error("acquire should succeed after release")
	}
	s.Release()
}

func TestResetDiscardsFlowState(t *testing.T) {
	s := &Session{
		Flow:  FlowGoalSetup,
		Step:  StepSleepGoal,
		Setup: &GoalSetupData{DietGoal: 2000},
	}
	s.Reset()
	if s.Active() {
		t.Error("session should be inactive after reset")
	}
	if s.Setup != nil || s.Report != nil || s.Edit != nil {
		t.Error("flow data should be discarded on reset")
	}
}

func TestSetFieldReplacesByName(t *testing.T) {
	d := &DailyReportData{}
	d.SetField("sleep", model.TempField{TrackedValue: 7, GoalField: model.KeySleepGoal})
	d.SetField("sleep", model.TempField{TrackedValue: 8, GoalField: model.KeySleepGoal})
	if len(d.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(d.Fields))
	}
	if d.Fields[0].Field.TrackedValue != 8 {
		t.Errorf("expected replaced value 8, got %d", d.Fields[0].Field.TrackedValue)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s := st.Get(id % 5)
			if s.TryAcquire() {
				s.Flow = FlowDailyReport
				s.Reset()
				s.Release()
			}
		}(int64(i))
	}
	wg.Wait()
}
