package flow

import (
	"telegram-habit-bot/internal/model"
	"telegram-habit-bot/internal/session"
)

// echoTexts resolves every key to itself so tests can assert on keys.
type echoTexts struct{}

func (echoTexts) Get(key string) string { return key }

func testMachine() *Machine {
	return NewMachine(echoTexts{})
}

func userWithGoals(trainingType model.TrainingGoalType, custom ...string) model.User {
	gs := &model.GoalSet{}
	gs.Set(model.KeyDietGoal, model.Goal{Name: "diet", Value: model.IntPtr(2000), ChangeAccess: model.GoalEditable})
	gs.Set(model.KeyTrainingGoal, model.Goal{Name: "training", Value: model.IntPtr(3), ChangeAccess: model.GoalEditable})
	gs.Set(model.KeyTrainingGoalType, model.Goal{Name: "type", Type: trainingType, ChangeAccess: model.GoalEditable})
	gs.Set(model.KeySleepGoal, model.Goal{Name: "sleep", Value: model.IntPtr(8), ChangeAccess: model.GoalEditable})
	for _, name := range custom {
		gs.Set(gs.NextCustomKey(), model.Goal{Name: name, Value: model.IntPtr(10), ChangeAccess: model.GoalDeletable})
	}
	return model.User{TelegramID: 42, FullName: "Test User", Goals: gs}
}

func newSession() *session.Session {
	return &session.Session{}
}
