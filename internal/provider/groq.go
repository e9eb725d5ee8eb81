package provider

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Маркер для бэкенда без поддержки изображений: ответ деградирует,
// но не падает.
const imageMarker = " [Пользователь отправил изображение]"

// GroqClient — текстовый бэкенд. Groq говорит по протоколу OpenAI,
// поэтому используется тот же клиент с заменённым базовым URL.
type GroqClient struct {
	client      *openai.Client
	model       string
	temperature float32
	topP        float32
}

func NewGroqClient(apiKey, model string, temperature, topP float32) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &GroqClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		topP:        topP,
	}
}

func (c *GroqClient) SupportsImages() bool {
	return false
}

func (c *GroqClient) Chat(ctx context.Context, userID string, messages []Message, images []ImageAttachment) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    buildMessages(messages, len(images) > 0),
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		logrus.Errorf("[Groq] Ошибка при запросе для пользователя %s: %v", userID, err)
		return "", fmt.Errorf("ошибка при запросе к Groq: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logrus.Errorf("[Groq] Пустой ответ для пользователя %s", userID)
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages переводит общий список сообщений в формат OpenAI.
// Системная реплика ставится первой, при наличии изображений к последнему
// сообщению пользователя добавляется текстовый маркер.
func buildMessages(messages []Message, hasImages bool) []openai.ChatCompletionMessage {
	var system *Message
	rest := make([]Message, 0, len(messages))
	for i := range messages {
		if messages[i].Role == RoleSystem {
			system = &messages[i]
			continue
		}
		rest = append(rest, messages[i])
	}

	lastUser := -1
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i].Role == RoleUser {
			lastUser = i
			break
		}
	}

	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	if system != nil {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system.Content,
		})
	}

	for i, m := range rest {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		content := m.Content
		if hasImages && i == lastUser {
			content += imageMarker
		}
		result = append(result, openai.ChatCompletionMessage{
			Role:    role,
			Content: content,
		})
	}

	return result
}
