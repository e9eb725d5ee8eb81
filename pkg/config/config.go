package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoTelegramToken = errors.New("не задан TELEGRAM_TOKEN")
	ErrNoGeminiKey     = errors.New("не задан GEMINI_API_KEY")
)

type Config struct {
	TelegramToken   string
	GeminiAPIKey    string
	GroqAPIKey      string
	AdminChatID     int64
	SQLitePath      string
	GeminiModel     string
	GroqModel       string
	Temperature     float32
	TopP            float32
	HistoryMaxTurns int
	RequestTimeout  time.Duration
	Character       string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Не найден файл .env")
	}

	return &Config{
		TelegramToken:   getEnv("TELEGRAM_TOKEN", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		AdminChatID:     getEnvInt64("ADMIN_CHAT_ID", 0),
		SQLitePath:      getEnv("SQLITE_DB_PATH", "data/bot.sqlite"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-flash-latest"),
		GroqModel:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		Temperature:     getEnvFloat32("GPT_TEMPERATURE", 1),
		TopP:            getEnvFloat32("GPT_TOP_P", 0.95),
		HistoryMaxTurns: getEnvInt("HISTORY_MAX_TURNS", 30),
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 120)) * time.Second,
		Character:       getEnv("BOT_CHARACTER", ""),
	}
}

// Validate проверяет обязательные ключи до старта бота.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return ErrNoTelegramToken
	}
	if c.GeminiAPIKey == "" {
		return ErrNoGeminiKey
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Некорректное значение %s=%q, используется %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.Warnf("Некорректное значение %s=%q, используется %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvFloat32(key string, defaultValue float32) float32 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		logrus.Warnf("Некорректное значение %s=%q, используется %v", key, value, defaultValue)
		return defaultValue
	}
	return float32(parsed)
}
