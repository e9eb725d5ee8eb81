package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

var ErrEmptyReply = errors.New("пустой ответ от ИИ")

// GeminiClient — бэкенд с поддержкой изображений. Системная реплика
// уходит в выделенное поле SystemInstruction, внутренние роли
// отображаются в user/model.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	topP        float32
}

func NewGeminiClient(ctx context.Context, apiKey, model string, temperature, topP float32) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации клиента Gemini: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: temperature,
		topP:        topP,
	}, nil
}

func (c *GeminiClient) SupportsImages() bool {
	return true
}

func (c *GeminiClient) Chat(ctx context.Context, userID string, messages []Message, images []ImageAttachment) (string, error) {
	system, contents := buildContents(messages, images)

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
		TopP:        genai.Ptr(c.topP),
	}
	if system != nil {
		cfg.SystemInstruction = system
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		logrus.Errorf("[Gemini] Ошибка при запросе для пользователя %s: %v", userID, err)
		return "", fmt.Errorf("ошибка при запросе к Gemini: %w", err)
	}

	text := resp.Text()
	if text == "" {
		logrus.Errorf("[Gemini] Пустой ответ для пользователя %s", userID)
		return "", ErrEmptyReply
	}
	return text, nil
}

// buildContents переводит общий список сообщений в формат Gemini.
// Системная реплика извлекается отдельно, изображения прикрепляются
// только к последнему сообщению пользователя.
func buildContents(messages []Message, images []ImageAttachment) (*genai.Content, []*genai.Content) {
	var system *genai.Content

	lastUser := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			lastUser = i
			break
		}
	}

	contents := make([]*genai.Content, 0, len(messages))
	for i, m := range messages {
		if m.Role == RoleSystem {
			system = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
			continue
		}

		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		if i == lastUser && len(images) > 0 {
			if m.Content != "" {
				parts = append(parts, &genai.Part{Text: m.Content})
			}
			for _, img := range images {
				parts = append(parts, &genai.Part{
					InlineData: &genai.Blob{
						Data:     img.Data,
						MIMEType: img.MIMEType,
					},
				})
			}
		} else {
			parts = []*genai.Part{{Text: m.Content}}
		}

		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: parts,
		})
	}

	return system, contents
}
