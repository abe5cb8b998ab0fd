// Package report converts finished conversation state into persisted reports
// and reshapes report windows into chart-ready series.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"telegram-habit-bot/internal/model"
)

// ErrGoalNotResolved signals that a captured answer references a goal key no
// longer present in the user's GoalSet (deleted mid-flow). The flow must be
// aborted and restarted; the answer is never silently dropped.
var ErrGoalNotResolved = errors.New("reported goal key not found in goal set")

// Finalize binds every captured answer to its originating goal and assembles
// an immutable report snapshot. Deterministic on its inputs apart from ID and
// CreatedAt.
func Finalize(fields []model.TempEntry, user model.User, now time.Time) (model.Report, error) {
	rep := model.Report{
		ID:             uuid.New(),
		UserTelegramID: user.TelegramID,
		CreatedAt:      now,
	}

	if !user.HasGoals() {
		return model.Report{}, errors.Wrap(ErrGoalNotResolved, "user has no goals")
	}

	for _, e := range fields {
		goal, ok := user.Goals.Get(e.Field.GoalField)
		if !ok || goal.Value == nil {
			return model.Report{}, errors.Wrapf(ErrGoalNotResolved, "field %s (goal %s)", e.Name, e.Field.GoalField)
		}
		rep.Fields = append(rep.Fields, model.ReportField{
			Key:          e.Name,
			Title:        e.Field.Title,
			TrackedValue: e.Field.TrackedValue,
			GoalValue:    *goal.Value,
			Color:        e.Field.Color,
		})
	}

	return rep, nil
}
