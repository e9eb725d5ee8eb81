package chat

import (
	"context"
	"errors"
	"time"

	"assistantbot/internal/history"
	"assistantbot/internal/provider"
	"assistantbot/internal/session"

	"github.com/sirupsen/logrus"
)

// ErrAIResponse — единственная ошибка, которую видит вызывающая сторона
// при любом сбое бэкенда; детали остаются в логах.
var ErrAIResponse = errors.New("AI response error")

const defaultImagePrompt = "Что изображено на этой фотографии?"

// Service — диспетчер диалога: принимает входящее сообщение, ведёт журнал
// сессии и выбирает подходящий бэкенд. Клиенты передаются явно при старте.
type Service struct {
	text     provider.ChatClient
	vision   provider.ChatClient
	maxTurns int
	timeout  time.Duration
}

func NewService(text, vision provider.ChatClient, maxTurns int, timeout time.Duration) *Service {
	return &Service{
		text:     text,
		vision:   vision,
		maxTurns: maxTurns,
		timeout:  timeout,
	}
}

// SendMessage добавляет сообщение пользователя в журнал, отправляет диалог
// бэкенду и записывает ответ. При сбое бэкенда реплика пользователя
// остаётся в журнале, ответ не дописывается.
func (s *Service) SendMessage(ctx context.Context, sess *session.UserSession, text string, images []provider.ImageAttachment) (string, error) {
	sess.Lock()
	defer sess.Unlock()

	if text == "" && len(images) > 0 {
		text = defaultImagePrompt
	}

	sess.History.Add(history.Turn{
		Role:    history.RoleUser,
		Content: text,
		Tokens:  0,
	})
	sess.History.TrimTurns(s.maxTurns)

	// Персонаж подставляется при каждой сборке и в журнал не пишется.
	messages := sess.History.Messages()
	if sess.Character != "" {
		messages = append([]provider.Message{{
			Role:    provider.RoleSystem,
			Content: sess.Character,
		}}, messages...)
	}

	client := s.text
	if len(images) > 0 && !s.text.SupportsImages() && s.vision != nil {
		client = s.vision
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := client.Chat(callCtx, sess.UserID, messages, images)
	if err != nil || reply == "" {
		logrus.Errorf("[ЧАТ] ИИ не вернул ответ пользователю %s: %v", sess.UserID, err)
		return "", ErrAIResponse
	}

	sess.History.Add(history.Turn{
		Role:    history.RoleAssistant,
		Content: reply,
		Tokens:  0,
	})

	return reply, nil
}
