package bot

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"telegram-habit-bot/internal/flow"
	"telegram-habit-bot/internal/model"
	"telegram-habit-bot/internal/report"
	"telegram-habit-bot/internal/session"
	"telegram-habit-bot/internal/storage"
	"telegram-habit-bot/internal/texts"
)

type messageHandler struct {
	b               *telebot.Bot
	storageInstance *storage.Storage
	log             *logrus.Logger
	txt             *texts.Texts
	machine         *flow.Machine
	sessions        *session.Store
	renderer        Renderer
	loc             *time.Location
}

func newMessageHandler(
	b *telebot.Bot,
	storageInstance *storage.Storage,
	log *logrus.Logger,
	txt *texts.Texts,
	machine *flow.Machine,
	sessions *session.Store,
	renderer Renderer,
	loc *time.Location,
) *messageHandler {
	return &messageHandler{
		b:               b,
		storageInstance: storageInstance,
		log:             log,
		txt:             txt,
		machine:         machine,
		sessions:        sessions,
		renderer:        renderer,
		loc:             loc,
	}
}

// withSession serializes inbound actions per user. A duplicate tap that races
// in while the first one is still being handled is dropped, not queued.
func (h *messageHandler) withSession(userID int64, fn func(s *session.Session) error) error {
	s := h.sessions.Get(userID)
	if !s.TryAcquire() {
		h.log.WithField("userId", userID).Debug("dropping concurrent update")
		return nil
	}
	defer s.Release()
	return fn(s)
}

func (h *messageHandler) handleOnText(m *telebot.Message) error {
	text := strings.TrimSpace(m.Text)
	return h.withSession(m.Sender.ID, func(s *session.Session) error {
		switch text {
		case h.txt.Get("btn-set-goals"):
			return h.handleSetGoals(s, m.Sender)
		case h.txt.Get("btn-track-your-day"):
			return h.handleTrackDay(s, m.Sender)
		case h.txt.Get("btn-statistic"):
			return h.handleStatistics(s, m.Sender)
		case h.txt.Get("btn-show-user-goals"):
			return h.handleShowGoals(s, m.Sender)
		case h.txt.Get("btn-edit-goals"):
			return h.handleEditGoals(s, m.Sender)
		}

		if s.Active() {
			return h.advance(s, m.Sender, flow.TextEvent(m.Text))
		}

		_, err := h.b.Send(m.Sender, h.txt.Get("message-unknown-command"))
		return err
	})
}

func (h *messageHandler) handleStart(m *telebot.Message) error {
	return h.withSession(m.Sender.ID, func(s *session.Session) error {
		s.Reset()
		user, err := h.storageInstance.GetUser(m.Sender.ID)
		if errors.Is(err, storage.ErrUserNotFound) {
			_, err := h.b.Send(m.Sender, h.txt.Get("message-create-profile-before-next-actions"))
			return err
		}
		if err != nil {
			return h.sendStorageFailure(m.Sender, err)
		}

		greeting := h.txt.Get("template-greeting-user-first-part") + " " + fullName(m.Sender) + ", "
		if user.HasGoals() {
			greeting += h.txt.Get("template-greeting-user-second-part-with-goals")
			_, err = h.b.Send(m.Sender, greeting, mainKeyboard(h.txt))
		} else {
			greeting += h.txt.Get("template-greeting-user-second-part-without-goals")
			_, err = h.b.Send(m.Sender, greeting, setGoalsKeyboard(h.txt))
		}
		return err
	})
}

func (h *messageHandler) handleCreateProfile(m *telebot.Message) error {
	return h.withSession(m.Sender.ID, func(s *session.Session) error {
		_, err := h.storageInstance.GetUser(m.Sender.ID)
		if err == nil {
			_, err = h.b.Send(m.Sender, h.txt.Get("message-profile-already-created"))
			return err
		}
		if !errors.Is(err, storage.ErrUserNotFound) {
			return h.sendStorageFailure(m.Sender, err)
		}

		user := model.User{
			TelegramID: m.Sender.ID,
			FullName:   fullName(m.Sender),
			Username:   m.Sender.Username,
		}
		if err := h.storageInstance.CreateUser(user); err != nil {
			return h.sendStorageFailure(m.Sender, err)
		}
		_, err = h.b.Send(m.Sender, h.txt.Get("message-profile-sucessfully-created"), setGoalsKeyboard(h.txt))
		return err
	})
}

func (h *messageHandler) handleDeleteProfile(m *telebot.Message) error {
	return h.withSession(m.Sender.ID, func(s *session.Session) error {
		_, err := h.storageInstance.GetUser(m.Sender.ID)
		if errors.Is(err, storage.ErrUserNotFound) {
			_, err = h.b.Send(m.Sender, h.txt.Get("message-profile-already-deleted"))
			return err
		}
		if err != nil {
			return h.sendStorageFailure(m.Sender, err)
		}

		if err := h.storageInstance.DeleteAllReports(m.Sender.ID); err != nil {
			return h.sendStorageFailure(m.Sender, err)
		}
		if err := h.storageInstance.DeleteUser(m.Sender.ID); err != nil {
			return h.sendStorageFailure(m.Sender, err)
		}
		s.Reset()
		_, err = h.b.Send(m.Sender, h.txt.Get("message-profile-sucessfully-deleted"),
			&telebot.ReplyMarkup{RemoveKeyboard: true})
		return err
	})
}

func (h *messageHandler) handleSetGoals(s *session.Session, sender *telebot.User) error {
	_, ok, err := h.requireUser(sender)
	if !ok {
		return err
	}
	return h.sendReplies(sender, h.machine.StartGoalSetup(s))
}

func (h *messageHandler) handleTrackDay(s *session.Session, sender *telebot.User) error {
	if _, ok, err := h.requireUserWithGoals(sender); !ok {
		return err
	}

	last, err := h.storageInstance.GetLastReport(sender.ID)
	if err != nil {
		return h.sendStorageFailure(sender, err)
	}

	// both refusals are informational and leave no flow state behind
	switch report.TrackRefusal(last, time.Now(), h.loc) {
	case report.RefusalAlreadyTracked:
		s.Reset()
		_, err = h.b.Send(sender, h.txt.Get("message-track-same-date"), mainKeyboard(h.txt))
		return err
	case report.RefusalTooEarly:
		s.Reset()
		_, err = h.b.Send(sender, h.txt.Get("message-track-before-evening"), mainKeyboard(h.txt))
		return err
	}

	return h.sendReplies(sender, h.machine.StartDailyReport(s))
}

func (h *messageHandler) handleStatistics(s *session.Session, sender *telebot.User) error {
	s.Reset()
	_, ok, err := h.requireUserWithGoals(sender)
	if !ok {
		return err
	}

	now := time.Now()
	reports, err := h.storageInstance.GetReportsInWindow(sender.ID, now.AddDate(0, 0, -report.WindowDays), now)
	if err != nil {
		return h.sendStorageFailure(sender, err)
	}

	if remaining := report.RemainingDays(reports, h.loc); remaining > 0 {
		_, err = h.b.Send(sender, fmt.Sprintf(h.txt.Get("template-statistic-remaining-days"), remaining))
		return err
	}

	dataset := report.WindowToSeries(reports, now, h.loc)
	images, err := h.renderer.Render(dataset)
	if err != nil {
		h.log.WithField("userId", sender.ID).WithError(err).Error("error rendering statistics")
		_, sendErr := h.b.Send(sender, h.txt.Get("message-statistic-failed"))
		if sendErr != nil {
			return fmt.Errorf("%v: %w", err, sendErr)
		}
		return err
	}

	for _, img := range images {
		photo := &telebot.Photo{File: telebot.FromReader(bytes.NewReader(img))}
		if _, err := h.b.Send(sender, photo); err != nil {
			return err
		}
	}
	return nil
}

func (h *messageHandler) handleShowGoals(s *session.Session, sender *telebot.User) error {
	s.Reset()
	user, ok, err := h.requireUserWithGoals(sender)
	if !ok {
		return err
	}

	var response strings.Builder
	response.WriteString(h.txt.Get("message-show-goals-title") + "\n")
	for _, e := range user.Goals.Entries {
		if e.Key == model.KeyTrainingGoalType {
			continue
		}
		if e.Goal.Value != nil {
			response.WriteString(fmt.Sprintf("- %s: %d\n", e.Goal.Name, *e.Goal.Value))
		}
	}

	_, err = h.b.Send(sender, response.String(), mainKeyboard(h.txt))
	return err
}

func (h *messageHandler) handleEditGoals(s *session.Session, sender *telebot.User) error {
	user, ok, err := h.requireUserWithGoals(sender)
	if !ok {
		return err
	}
	return h.sendReplies(sender, h.machine.StartGoalEdit(s, user))
}

// advance feeds one event into the active flow and performs the persistence
// its completion requires. Persistence failures keep the session as is so the
// user's last input is not lost.
func (h *messageHandler) advance(s *session.Session, sender *telebot.User, ev flow.Event) error {
	switch s.Flow {
	case session.FlowGoalSetup:
		replies, goals := h.machine.HandleGoalSetup(s, ev)
		if goals == nil {
			return h.sendReplies(sender, replies)
		}
		if _, err := h.storageInstance.SetUserGoals(sender.ID, goals); err != nil {
			return h.sendStorageFailure(sender, err)
		}
		s.Reset()
		_, err := h.b.Send(sender, h.txt.Get("message-setting-goals-completed"), mainKeyboard(h.txt))
		return err

	case session.FlowDailyReport:
		user, err := h.storageInstance.GetUser(sender.ID)
		if err != nil {
			return h.sendStorageFailure(sender, err)
		}
		replies, fields := h.machine.HandleDailyReport(s, user, ev)
		if fields == nil {
			return h.sendReplies(sender, replies)
		}
		rep, err := report.Finalize(fields, user, time.Now().In(h.loc))
		if err != nil {
			// a goal disappeared mid-flow: abort, the flow must be restarted
			h.log.WithField("userId", sender.ID).WithError(err).Warn("report finalization failed")
			s.Reset()
			_, sendErr := h.b.Send(sender, h.txt.Get("message-track-failed"), mainKeyboard(h.txt))
			return sendErr
		}
		if err := h.storageInstance.CreateReport(rep); err != nil {
			return h.sendStorageFailure(sender, err)
		}
		s.Reset()
		_, err = h.b.Send(sender, h.txt.Get("message-track-successfully"), mainKeyboard(h.txt))
		return err

	case session.FlowGoalEdit:
		user, err := h.storageInstance.GetUser(sender.ID)
		if err != nil {
			return h.sendStorageFailure(sender, err)
		}
		replies, action := h.machine.HandleGoalEdit(s, user, ev)
		if action == nil {
			return h.sendReplies(sender, replies)
		}
		updated, confirmKey, err := h.applyEditAction(sender.ID, action)
		if err != nil {
			return h.sendStorageFailure(sender, err)
		}
		if _, err := h.b.Send(sender, h.txt.Get(confirmKey)); err != nil {
			return err
		}
		return h.sendReplies(sender, h.machine.StartGoalEdit(s, updated))
	}

	return nil
}

func (h *messageHandler) applyEditAction(userID int64, a *flow.EditAction) (model.User, string, error) {
	switch a.Kind {
	case flow.EditUpdateValue:
		user, err := h.storageInstance.UpdateGoalValue(userID, a.Key, a.Value)
		return user, "message-goal-updated", err
	case flow.EditCreateGoal:
		user, err := h.storageInstance.AddGoal(userID, a.Key, a.Goal)
		return user, "message-goal-created", err
	case flow.EditUpdateTrainingType:
		user, err := h.storageInstance.UpdateTrainingGoalType(userID, a.TrainingType)
		return user, "message-training-type-updated", err
	case flow.EditDeleteGoal:
		user, err := h.storageInstance.DeleteGoal(userID, a.Key)
		return user, "message-goal-deleted", err
	}
	return model.User{}, "", fmt.Errorf("unknown edit action %d", a.Kind)
}

// requireUser answers for itself when the user is missing; ok reports whether
// the caller should proceed.
func (h *messageHandler) requireUser(sender *telebot.User) (model.User, bool, error) {
	user, err := h.storageInstance.GetUser(sender.ID)
	if errors.Is(err, storage.ErrUserNotFound) {
		_, err = h.b.Send(sender, h.txt.Get("message-create-profile-before-next-actions"))
		return model.User{}, false, err
	}
	if err != nil {
		return model.User{}, false, h.sendStorageFailure(sender, err)
	}
	return user, true, nil
}

func (h *messageHandler) requireUserWithGoals(sender *telebot.User) (model.User, bool, error) {
	user, ok, err := h.requireUser(sender)
	if !ok {
		return model.User{}, false, err
	}
	if !user.HasGoals() {
		_, err = h.b.Send(sender, h.txt.Get("message-goals-not-set"), setGoalsKeyboard(h.txt))
		return model.User{}, false, err
	}
	return user, true, nil
}

func (h *messageHandler) sendReplies(to *telebot.User, replies []flow.Reply) error {
	for _, r := range replies {
		var err error
		if markup := inlineMarkup(r); markup != nil {
			_, err = h.b.Send(to, r.Text, markup)
		} else {
			_, err = h.b.Send(to, r.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *messageHandler) sendStorageFailure(to *telebot.User, err error) error {
	_, sendErr := h.b.Send(to, h.txt.Get("message-storage-unavailable"))
	if sendErr != nil {
		return fmt.Errorf("%v: %w", err, sendErr)
	}
	return err
}

func fullName(u *telebot.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
