package bot

import (
	"gopkg.in/telebot.v3"

	"telegram-habit-bot/internal/flow"
	"telegram-habit-bot/internal/texts"
)

// inlineMarkup converts a flow reply's button rows into an inline keyboard.
// Callback data is "<action>:<arg>".
func inlineMarkup(r flow.Reply) *telebot.ReplyMarkup {
	if len(r.Buttons) == 0 {
		return nil
	}

	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for _, row := range r.Buttons {
		var btns []telebot.Btn
		for _, btn := range row {
			data := btn.Action
			if btn.Arg != "" {
				data += ":" + btn.Arg
			}
			btns = append(btns, markup.Data(btn.Text, data))
		}
		rows = append(rows, markup.Row(btns...))
	}
	markup.Inline(rows...)
	return markup
}

func mainKeyboard(txt *texts.Texts) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(txt.Get("btn-track-your-day"))),
		markup.Row(markup.Text(txt.Get("btn-statistic"))),
		markup.Row(markup.Text(txt.Get("btn-show-user-goals")), markup.Text(txt.Get("btn-edit-goals"))),
	)
	return markup
}

func setGoalsKeyboard(txt *texts.Texts) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	markup.Reply(markup.Row(markup.Text(txt.Get("btn-set-goals"))))
	return markup
}
