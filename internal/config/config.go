package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	BotToken   string
	LogLevel   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	Timezone   string
	TextsPath  string
}

func LoadConfig() (*Config, error) {
	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		Timezone:   getenvDefault("REPORT_TIMEZONE", "Europe/Kyiv"),
		TextsPath:  getenvDefault("TEXTS_PATH", "text_data.json"),
	}, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
