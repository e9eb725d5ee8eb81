package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"assistantbot/internal/chat"
	"assistantbot/internal/provider"
	"assistantbot/internal/session"
	"assistantbot/internal/telegram"
	"assistantbot/internal/users"
	"assistantbot/pkg/config"
	"assistantbot/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Ошибка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewSQLiteDB(cfg.SQLitePath)
	if err != nil {
		logrus.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer database.Close()

	gemini, err := provider.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature, cfg.TopP)
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации Gemini: %v", err)
	}

	// Groq предпочтительнее для текста, если задан ключ; изображения в этом
	// случае идут через Gemini. Без ключа Groq Gemini обслуживает всё сам.
	var textClient provider.ChatClient = gemini
	var visionClient provider.ChatClient
	if cfg.GroqAPIKey != "" {
		logrus.Info("[AI] Текст через Groq, изображения через Gemini")
		textClient = provider.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.Temperature, cfg.TopP)
		visionClient = gemini
	} else {
		logrus.Info("[AI] Используется Gemini")
	}

	chatService := chat.NewService(textClient, visionClient, cfg.HistoryMaxTurns, cfg.RequestTimeout)
	sessions := session.NewManager(cfg.Character)

	userRepo := users.NewRepository(database)
	userService := users.NewService(userRepo)

	handler, err := telegram.NewHandler(cfg, chatService, sessions, userService)
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации Telegram бота: %v", err)
	}

	handler.Run(ctx)

	logrus.Info("Бот остановлен")
}
