package flow

import (
	"fmt"

	"telegram-habit-bot/internal/model"
	"telegram-habit-bot/internal/session"
)

// Report field colors, carried through to the persisted report.
const (
	colorDiet     = "red"
	colorTraining = "green"
	colorSleep    = "yellow"
	colorCustom   = "blue"
)

// StartDailyReport begins the daily-report flow. The caller has already
// checked the daily-tracking gate.
func (m *Machine) StartDailyReport(s *session.Session) []Reply {
	s.Reset()
	s.Flow = session.FlowDailyReport
	s.Step = session.StepDietScore
	s.Report = &session.DailyReportData{}
	return []Reply{m.message("message-track-diet")}
}

// HandleDailyReport advances the daily-report flow. The training step branches
// on the user's configured training-goal type; the custom sub-loop is driven
// by the GoalSet content in suffix insertion order. On completion it returns
// the captured entries for finalization.
func (m *Machine) HandleDailyReport(s *session.Session, user model.User, ev Event) ([]Reply, []model.TempEntry) {
	d := s.Report

	switch s.Step {
	case session.StepDietScore:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.SetField("diet", model.TempField{
			Title:        m.texts.Get("data-title-diet"),
			TrackedValue: v,
			Color:        colorDiet,
			GoalField:    model.KeyDietGoal,
		})
		if user.Goals.TrainingType() == model.TrainingKcal {
			s.Step = session.StepTrainingScoreKcal
			text := m.texts.Get("message-track-training") + " " + m.texts.Get("message-track-training-option-2")
			return []Reply{{Text: text}}, nil
		}
		s.Step = session.StepTrainingScoreDone
		text := m.texts.Get("message-track-training") + " " + m.texts.Get("message-track-training-option-1")
		return []Reply{{
			Text: text,
			Buttons: [][]Button{{
				{Text: m.texts.Get("btn-training-done-yes"), Action: ActionTrainingDone, Arg: "1"},
				{Text: m.texts.Get("btn-training-done-no"), Action: ActionTrainingDone, Arg: "0"},
			}},
		}}, nil

	case session.StepTrainingScoreDone:
		if ev.Kind != EventAction || ev.Action != ActionTrainingDone {
			return []Reply{m.message("message-value-format-error")}, nil
		}
		// done answers store 1, everything else 0
		v := 0
		if ev.Arg == "1" {
			v = 1
		}
		d.SetField("training", model.TempField{
			Title:        m.texts.Get("data-title-trainings-count"),
			TrackedValue: v,
			Color:        colorTraining,
			GoalField:    model.KeyTrainingGoal,
		})
		s.Step = session.StepSleepScore
		return []Reply{m.message("message-track-sleep")}, nil

	case session.StepTrainingScoreKcal:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.SetField("training", model.TempField{
			Title:        m.texts.Get("data-title-trainings-kcal"),
			TrackedValue: v,
			Color:        colorTraining,
			GoalField:    model.KeyTrainingGoal,
		})
		s.Step = session.StepSleepScore
		return []Reply{m.message("message-track-sleep")}, nil

	case session.StepSleepScore:
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		d.SetField("sleep", model.TempField{
			Title:        m.texts.Get("data-title-sleep"),
			TrackedValue: v,
			Color:        colorSleep,
			GoalField:    model.KeySleepGoal,
		})
		custom := user.Goals.Custom()
		if len(custom) == 0 {
			return nil, d.Fields
		}
		d.Custom = custom
		d.Cursor = 0
		s.Step = session.StepCustomScore
		return []Reply{m.template("template-track-custom", custom[0].Goal.Name)}, nil

	case session.StepCustomScore:
		if d.Cursor >= len(d.Custom) {
			return nil, d.Fields
		}
		v, reprompt := m.valueOrReprompt(ev)
		if reprompt != nil {
			return reprompt, nil
		}
		entry := d.Custom[d.Cursor]
		suffix, _ := model.CustomSuffix(entry.Key)
		d.SetField(fmt.Sprintf("custom_%d", suffix), model.TempField{
			Title:        entry.Goal.Name,
			TrackedValue: v,
			Color:        colorCustom,
			GoalField:    entry.Key,
		})
		d.Cursor++
		if d.Cursor == len(d.Custom) {
			return nil, d.Fields
		}
		return []Reply{m.template("template-track-custom", d.Custom[d.Cursor].Goal.Name)}, nil
	}

	return nil, nil
}
