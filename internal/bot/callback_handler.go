package bot

import (
	"strings"

	"gopkg.in/telebot.v3"

	"telegram-habit-bot/internal/flow"
	"telegram-habit-bot/internal/session"
)

type callbackHandler struct {
	*messageHandler
}

func newCallbackHandler(msgHandler *messageHandler) *callbackHandler {
	return &callbackHandler{messageHandler: msgHandler}
}

// handleCallback routes a button press into the active flow. Callback data is
// "<action>:<arg>" behind telebot's \f prefix.
func (h *callbackHandler) handleCallback(c *telebot.Callback) error {
	data := strings.ReplaceAll(c.Data, "\f", "")
	parts := strings.SplitN(strings.TrimSpace(data), ":", 2)
	if len(parts) == 0 || parts[0] == "" {
		h.log.WithField("userId", c.Sender.ID).Warn("empty callback data")
		return nil
	}
	action := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	return h.withSession(c.Sender.ID, func(s *session.Session) error {
		if err := h.b.Respond(c, &telebot.CallbackResponse{}); err != nil {
			h.log.WithField("userId", c.Sender.ID).WithError(err).Warn("error acknowledging callback")
		}

		if !s.Active() {
			h.log.WithField("userId", c.Sender.ID).WithField("action", action).
				Warn("callback without active flow")
			_, err := h.b.Send(c.Sender, h.txt.Get("message-unknown-command"))
			return err
		}

		// drop the pressed keyboard so a stale second tap has nothing to hit
		if _, err := h.b.EditReplyMarkup(c.Message, nil); err != nil {
			h.log.WithField("userId", c.Sender.ID).WithError(err).Debug("error clearing reply markup")
		}

		return h.advance(s, c.Sender, flow.ActionEvent(action, arg))
	})
}
