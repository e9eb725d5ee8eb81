package provider

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message — единица диалога в общем виде, без привязки к конкретному бэкенду.
type Message struct {
	Role    string
	Content string
}

// ImageAttachment передаётся только вместе с последним сообщением пользователя.
type ImageAttachment struct {
	Data     []byte
	MIMEType string
}

// ChatClient — общий интерфейс для всех LLM-бэкендов. Ошибка бэкенда
// логируется на месте и возвращается в нормализованном виде, текст
// ошибки бэкенда пользователю не уходит.
type ChatClient interface {
	Chat(ctx context.Context, userID string, messages []Message, images []ImageAttachment) (string, error)
	SupportsImages() bool
}
