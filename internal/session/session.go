// Package session keeps per-user conversation state for multi-step flows.
package session

import (
	"sync"

	"telegram-habit-bot/internal/model"
)

type Flow string

const (
	FlowNone        Flow = ""
	FlowGoalSetup   Flow = "goal_setup"
	FlowDailyReport Flow = "daily_report"
	FlowGoalEdit    Flow = "goal_edit"
)

type Step string

const (
	// goal setup
	StepDietGoal          Step = "diet_goal"
	StepTrainingGoalType  Step = "training_goal_type"
	StepTrainingGoalValue Step = "training_goal_value"
	StepSleepGoal         Step = "sleep_goal"
	StepCustomGoalName    Step = "custom_goal_name"
	StepCustomGoalValue   Step = "custom_goal_value"

	// daily report
	StepDietScore         Step = "diet_score"
	StepTrainingScoreDone Step = "training_score_done"
	StepTrainingScoreKcal Step = "training_score_kcal"
	StepSleepScore        Step = "sleep_score"
	StepCustomScore       Step = "custom_score"

	// goal edit
	StepEditMenu         Step = "edit_menu"
	StepEditGoalValue    Step = "edit_goal_value"
	StepNewGoalName      Step = "new_goal_name"
	StepNewGoalValue     Step = "new_goal_value"
	StepEditTrainingType Step = "edit_training_type"
)

// GoalSetupData accumulates the goal-setup flow. CustomNames grows while the
// user keeps adding goals; CustomValues binds numbers to those names in the
// same order during the second sub-loop.
type GoalSetupData struct {
	DietGoal     int
	TrainingType model.TrainingGoalType
	TrainingGoal int
	SleepGoal    int
	CustomNames  []string
	CustomValues []int
}

// DailyReportData accumulates a daily report. Custom is the snapshot of the
// user's custom goals taken when the sub-loop starts; Cursor points at the
// next one to ask about.
type DailyReportData struct {
	Fields []model.TempEntry
	Custom []model.GoalEntry
	Cursor int
}

// SetField records an answer, replacing an earlier answer under the same name
// so a re-submitted step cannot produce duplicate report fields.
func (d *DailyReportData) SetField(name string, f model.TempField) {
	for i, e := range d.Fields {
		if e.Name == name {
			d.Fields[i].Field = f
			return
		}
	}
	d.Fields = append(d.Fields, model.TempEntry{Name: name, Field: f})
}

type GoalEditData struct {
	TargetKey string
	NewName   string
}

// Session is one user's conversation state. Exactly one of the data variants
// is non-nil while a flow is active.
type Session struct {
	mu sync.Mutex

	Flow Flow
	Step Step

	Setup  *GoalSetupData
	Report *DailyReportData
	Edit   *GoalEditData
}

// TryAcquire claims the session for one inbound action. It fails instead of
// blocking so a duplicate tap racing in for the same user is dropped rather
// than double-advancing the flow.
func (s *Session) TryAcquire() bool {
	return s.mu.TryLock()
}

func (s *Session) Release() {
	s.mu.Unlock()
}

// Reset discards all accumulated flow state. The session object itself stays
// alive so in-flight lock holders remain valid.
func (s *Session) Reset() {
	s.Flow = FlowNone
	s.Step = ""
	s.Setup = nil
	s.Report = nil
	s.Edit = nil
}

func (s *Session) Active() bool {
	return s.Flow != FlowNone
}

// Store holds sessions keyed by telegram user id. Safe for concurrent use;
// per-user serialization is the session's own lock.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

func (st *Store) Get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{}
		st.sessions[userID] = s
	}
	return s
}
