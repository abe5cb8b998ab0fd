package flow

import (
	"telegram-habit-bot/internal/model"
	"telegram-habit-bot/internal/session"
)

// StartGoalSetup begins the goal-setup flow, discarding any previous state.
func (m *Machine) StartGoalSetup(s *session.Session) []Reply {
	s.Reset()
	s.Flow = session.FlowGoalSetup
	s.Step = session.StepDietGoal
	s.Setup = &session.GoalSetupData{}
	return []Reply{m.message("message-set-diet-goal")}
}

// HandleGoalSetup advances the goal-setup flow by one step. When the flow
// completes it returns the accumulated GoalSet; the caller persists it and
// resets the session only after the write succeeds.
func (m *Machine) HandleGoalSetup(s *session.Session, ev Event) ([]Reply, *model.GoalSet) {
	d := s.Setup

	switch s.Step {
	case session.StepDietGoal:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.DietGoal = v
		s.Step = session.StepTrainingGoalType
		return []Reply{m.trainingTypePrompt()}, nil

	case session.StepTrainingGoalType:
		if ev.Kind != EventAction || ev.Action != ActionTrainingType {
			return []Reply{m.trainingTypePrompt()}, nil
		}
		t := model.TrainingGoalType(ev.Arg)
		if t != model.TrainingPerWeek && t != model.TrainingKcal {
			return []Reply{m.trainingTypePrompt()}, nil
		}
		d.TrainingType = t
		s.Step = session.StepTrainingGoalValue
		if t == model.TrainingPerWeek {
			return []Reply{m.message("message-set-training-goal-option-1-wait-input")}, nil
		}
		return []Reply{m.message("message-set-training-goal-option-2-wait-input")}, nil

	case session.StepTrainingGoalValue:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.TrainingGoal = v
		s.Step = session.StepSleepGoal
		return []Reply{m.message("message-set-sleep-goal")}, nil

	case session.StepSleepGoal:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.SleepGoal = v
		s.Step = session.StepCustomGoalName
		return []Reply{{
			Text:    m.texts.Get("message-set-custom-goal-suggestion"),
			Buttons: [][]Button{{{Text: m.texts.Get("btn-skip"), Action: ActionSkipCustom}}},
		}}, nil

	case session.StepCustomGoalName:
		if ev.Kind == EventAction {
			switch ev.Action {
			case ActionSkipCustom, ActionCompleteCustom:
				if len(d.CustomNames) == 0 {
					return nil, m.buildGoalSet(d)
				}
				s.Step = session.StepCustomGoalValue
				return []Reply{m.template("template-set-custom-goal", d.CustomNames[0])}, nil
			}
			return nil, nil
		}
		name, reprompt := m.nameOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.CustomNames = append(d.CustomNames, name)
		return []Reply{{
			Text:    m.texts.Get("message-set-next-custom-goal"),
			Buttons: [][]Button{{{Text: m.texts.Get("btn-complete"), Action: ActionCompleteCustom}}},
		}}, nil

	case session.StepCustomGoalValue:
		if len(d.CustomValues) >= len(d.CustomNames) {
			return nil, m.buildGoalSet(d)
		}
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.CustomValues = append(d.CustomValues, v)
		if len(d.CustomValues) == len(d.CustomNames) {
			return nil, m.buildGoalSet(d)
		}
		return []Reply{m.template("template-set-custom-goal", d.CustomNames[len(d.CustomValues)])}, nil
	}

	return nil, nil
}

func (m *Machine) trainingTypePrompt() Reply {
	text := m.texts.Get("message-set-training-goal") + "\n" +
		m.texts.Get("message-set-training-goal-option-1") + "\n" +
		m.texts.Get("message-set-training-goal-option-2")
	return Reply{
		Text: text,
		Buttons: [][]Button{{
			{Text: m.texts.Get("btn-training-type-per-week"), Action: ActionTrainingType, Arg: string(model.TrainingPerWeek)},
			{Text: m.texts.Get("btn-training-type-kcal"), Action: ActionTrainingType, Arg: string(model.TrainingKcal)},
		}},
	}
}

// buildGoalSet assembles the final ordered GoalSet: the three fixed goals, the
// training-type marker, then the custom goals in capture order.
func (m *Machine) buildGoalSet(d *session.GoalSetupData) *model.GoalSet {
	trainingTitle := m.texts.Get("data-title-trainings-count")
	if d.TrainingType == model.TrainingKcal {
		trainingTitle = m.texts.Get("data-title-trainings-kcal")
	}

	gs := &model.GoalSet{}
	gs.Set(model.KeyDietGoal, model.Goal{
		Name:         m.texts.Get("data-title-diet"),
		Value:        model.IntPtr(d.DietGoal),
		ChangeAccess: model.GoalEditable,
	})
	gs.Set(model.KeyTrainingGoal, model.Goal{
		Name:         trainingTitle,
		Value:        model.IntPtr(d.TrainingGoal),
		ChangeAccess: model.GoalEditable,
	})
	gs.Set(model.KeyTrainingGoalType, model.Goal{
		Name:         m.texts.Get("data-title-training-type"),
		Type:         d.TrainingType,
		ChangeAccess: model.GoalEditable,
	})
	gs.Set(model.KeySleepGoal, model.Goal{
		Name:         m.texts.Get("data-title-sleep"),
		Value:        model.IntPtr(d.SleepGoal),
		ChangeAccess: model.GoalEditable,
	})

	for i, name := range d.CustomNames {
		if i >= len(d.CustomValues) {
			break
		}
		gs.Set(gs.NextCustomKey(), model.Goal{
			Name:         name,
			Value:        model.IntPtr(d.CustomValues[i]),
			ChangeAccess: model.GoalDeletable,
		})
	}

	return gs
}
