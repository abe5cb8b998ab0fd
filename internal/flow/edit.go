package flow

import (
	"fmt"

	"telegram-habit-bot/internal/model"
	"telegram-habit-bot/internal/session"
)

type EditActionKind int

const (
	EditUpdateValue EditActionKind = iota
	EditCreateGoal
	EditUpdateTrainingType
	EditDeleteGoal
)

// EditAction is a completed goal-edit operation for the caller to persist.
// After persisting, the caller restarts the edit menu with the updated user.
type EditAction struct {
	Kind         EditActionKind
	Key          string
	Goal         model.Goal
	Value        int
	TrainingType model.TrainingGoalType
}

// StartGoalEdit opens the edit menu: one row per goal with a delete button for
// deletable ones, plus rows for creating a goal and switching training type.
func (m *Machine) StartGoalEdit(s *session.Session, user model.User) []Reply {
	s.Reset()
	s.Flow = session.FlowGoalEdit
	s.Step = session.StepEditMenu
	s.Edit = &session.GoalEditData{}

	var rows [][]Button
	for _, e := range user.Goals.Entries {
		if e.Key == model.KeyTrainingGoalType {
			continue
		}
		label := e.Goal.Name
		if e.Goal.Value != nil {
			label = fmt.Sprintf("%s: %d", e.Goal.Name, *e.Goal.Value)
		}
		row := []Button{{Text: label, Action: ActionEditGoal, Arg: e.Key}}
		if e.Goal.ChangeAccess == model.GoalDeletable {
			row = append(row, Button{Text: m.texts.Get("btn-delete"), Action: ActionDeleteGoal, Arg: e.Key})
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		[]Button{{Text: m.texts.Get("btn-new-goal"), Action: ActionNewGoal}},
		[]Button{{Text: m.texts.Get("btn-edit-training-type"), Action: ActionEditTrainingType}},
	)

	return []Reply{{Text: m.texts.Get("message-edit-goals-menu"), Buttons: rows}}
}

// HandleGoalEdit advances the edit flow. Selecting an existing goal leads to a
// value prompt, creating a goal captures a name first; training-type switching
// is its own branch because it changes the daily-report training step.
func (m *Machine) HandleGoalEdit(s *session.Session, user model.User, ev Event) ([]Reply, *EditAction) {
	d := s.Edit

	switch s.Step {
	case session.StepEditMenu:
		if ev.Kind != EventAction {
			return []Reply{m.message("message-edit-goals-menu-hint")}, nil
		}
		switch ev.Action {
		case ActionEditGoal:
			goal, ok := user.Goals.Get(ev.Arg)
			if !ok {
				return m.StartGoalEdit(s, user), nil
			}
			d.TargetKey = ev.Arg
			s.Step = session.StepEditGoalValue
			return []Reply{m.template("message-edit-goal-wait-value", goal.Name)}, nil

		case ActionDeleteGoal:
			goal, ok := user.Goals.Get(ev.Arg)
			if !ok || goal.ChangeAccess != model.GoalDeletable {
				return m.StartGoalEdit(s, user), nil
			}
			return nil, &EditAction{Kind: EditDeleteGoal, Key: ev.Arg}

		case ActionNewGoal:
			s.Step = session.StepNewGoalName
			return []Reply{m.message("message-new-goal-wait-name")}, nil

		case ActionEditTrainingType:
			s.Step = session.StepEditTrainingType
			current := user.Goals.TrainingType()
			var row []Button
			if current != model.TrainingPerWeek {
				row = append(row, Button{
					Text:   m.texts.Get("btn-training-type-per-week"),
					Action: ActionTrainingType,
					Arg:    string(model.TrainingPerWeek),
				})
			}
			if current != model.TrainingKcal {
				row = append(row, Button{
					Text:   m.texts.Get("btn-training-type-kcal"),
					Action: ActionTrainingType,
					Arg:    string(model.TrainingKcal),
				})
			}
			return []Reply{{Text: m.texts.Get("message-edit-training-type"), Buttons: [][]Button{row}}}, nil
		}
		return nil, nil

	case session.StepEditGoalValue:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		return nil, &EditAction{Kind: EditUpdateValue, Key: d.TargetKey, Value: v}

	case session.StepNewGoalName:
		name, reprompt := m.nameOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.NewName = name
		s.Step = session.StepNewGoalValue
		return []Reply{m.message("message-new-goal-wait-value")}, nil

	case session.StepNewGoalValue:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		return nil, &EditAction{
			Kind: EditCreateGoal,
			Key:  user.Goals.NextCustomKey(),
			Goal: model.Goal{
				Name:         d.NewName,
				Value:        model.IntPtr(v),
				ChangeAccess: model.GoalDeletable,
			},
		}

	case session.StepEditTrainingType:
		if ev.Kind != EventAction || ev.Action != ActionTrainingType {
			return nil, nil
		}
		t := model.TrainingGoalType(ev.Arg)
		if t != model.TrainingPerWeek && t != model.TrainingKcal {
			return nil, nil
		}
		return nil, &EditAction{Kind: EditUpdateTrainingType, TrainingType: t}
	}

	return nil, nil
}
