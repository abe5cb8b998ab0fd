package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/telebot.v3"

	"telegram-habit-bot/internal/bot"
	"telegram-habit-bot/internal/charts"
	"telegram-habit-bot/internal/config"
	"telegram-habit-bot/internal/logger"
	"telegram-habit-bot/internal/session"
	"telegram-habit-bot/internal/storage"
	"telegram-habit-bot/internal/texts"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		appLogger.Fatalf("unknown reporting timezone %q: %v", cfg.Timezone, err)
	}

	migrateURL := fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err := storage.RunMigrations(migrateURL); err != nil {
		appLogger.Fatalf("unable to apply migrations: %v", err)
	}

	dbInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	storageInstance, err := storage.NewStorage(context.Background(), dbInfo)
	if err != nil {
		appLogger.Fatalf("unable to connect to database: %v", err)
	}
	defer storageInstance.Close()

	txt, err := texts.Load(cfg.TextsPath, appLogger)
	if err != nil {
		appLogger.Fatalf("unable to load texts: %v", err)
	}

	botSettings := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}
	botAPI, err := telebot.NewBot(botSettings)
	if err != nil {
		appLogger.Fatalf("error creating bot instance: %v", err)
	}

	bot.RegisterHandlers(botAPI, storageInstance, appLogger, txt, session.NewStore(), charts.NewRenderer(), loc)
	appLogger.Info("bot start")
	botAPI.Start()
}
