package bot

import (
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"telegram-habit-bot/internal/flow"
	"telegram-habit-bot/internal/model"
	"telegram-habit-bot/internal/session"
	"telegram-habit-bot/internal/storage"
	"telegram-habit-bot/internal/texts"
)

// Renderer turns a statistics dataset into chart images.
type Renderer interface {
	Render(model.ChartDataset) ([][]byte, error)
}

func RegisterHandlers(
	b *telebot.Bot,
	storageInstance *storage.Storage,
	log *logrus.Logger,
	txt *texts.Texts,
	sessions *session.Store,
	renderer Renderer,
	loc *time.Location,
) {
	machine := flow.NewMachine(txt)
	msgHandler := newMessageHandler(b, storageInstance, log, txt, machine, sessions, renderer, loc)
	cbHandler := newCallbackHandler(msgHandler)

	b.Handle("/start", func(ctx telebot.Context) error {
		err := msgHandler.handleStart(ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /start")
		}
		return nil
	})

	b.Handle("/create_profile", func(ctx telebot.Context) error {
		err := msgHandler.handleCreateProfile(ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).
				Error("error handling /create_profile")
		}
		return nil
	})

	b.Handle("/delete_profile", func(ctx telebot.Context) error {
		err := msgHandler.handleDeleteProfile(ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).
				Error("error handling /delete_profile")
		}
		return nil
	})

	b.Handle(telebot.OnText, func(ctx telebot.Context) error {
		err := msgHandler.handleOnText(ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling text")
		}
		return nil
	})

	b.Handle(telebot.OnCallback, func(ctx telebot.Context) error {
		err := cbHandler.handleCallback(ctx.Callback())
		if err != nil {
			log.WithField("userId", ctx.Callback().Sender.ID).WithError(err).Error("error handling callback")
		}
		return nil
	})
}
