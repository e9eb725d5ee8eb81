package history

import "assistantbot/internal/provider"

const (
	RoleSystem    = provider.RoleSystem
	RoleUser      = provider.RoleUser
	RoleAssistant = provider.RoleAssistant
)

// Turn — одна реплика диалога. Content после создания не меняется.
// Tokens — ориентировочная стоимость для усечения, 0 если токенизатор не подключён.
type Turn struct {
	Role    string
	Content string
	Tokens  int
}

// History — упорядоченный журнал реплик одной сессии, от старых к новым.
// Не потокобезопасен сам по себе: сессия сериализует доступ.
type History struct {
	turns []Turn
}

func New() *History {
	return &History{}
}

// Add добавляет реплику в конец (хронологический порядок).
func (h *History) Add(turn Turn) {
	h.turns = append(h.turns, turn)
}

// Insert вставляет реплику на позицию pos, 0 означает начало журнала.
// Низкоуровневый примитив; диспетчер всегда использует Add.
func (h *History) Insert(pos int, turn Turn) {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(h.turns) {
		h.turns = append(h.turns, turn)
		return
	}
	h.turns = append(h.turns[:pos], append([]Turn{turn}, h.turns[pos:]...)...)
}

// Trim выселяет самые старые реплики user/assistant, пока суммарная
// стоимость не уложится в maxTokens. Системная реплика не выселяется
// никогда, самая свежая реплика остаётся даже если одна превышает лимит.
// maxTokens <= 0 отключает усечение по стоимости.
func (h *History) Trim(maxTokens int) {
	if maxTokens <= 0 {
		return
	}
	h.evict(func() bool { return h.totalTokens() > maxTokens })
}

// TrimTurns — то же выселение с лимитом по числу реплик. Пока стоимость
// реплик везде нулевая, рабочим ограничением является именно он.
func (h *History) TrimTurns(maxTurns int) {
	if maxTurns <= 0 {
		return
	}
	h.evict(func() bool { return len(h.turns) > maxTurns })
}

func (h *History) evict(over func() bool) {
	for over() {
		idx := -1
		for i, t := range h.turns {
			if t.Role != RoleSystem {
				idx = i
				break
			}
		}
		// нечего выселять или осталась только самая свежая реплика
		if idx < 0 || idx == len(h.turns)-1 {
			return
		}
		h.turns = append(h.turns[:idx], h.turns[idx+1:]...)
	}
}

func (h *History) totalTokens() int {
	total := 0
	for _, t := range h.turns {
		total += t.Tokens
	}
	return total
}

// Messages — проекция журнала в общий формат провайдера, порядок и число
// реплик сохраняются, служебные поля (Tokens) отбрасываются.
func (h *History) Messages() []provider.Message {
	messages := make([]provider.Message, len(h.turns))
	for i, t := range h.turns {
		messages[i] = provider.Message{
			Role:    t.Role,
			Content: t.Content,
		}
	}
	return messages
}

func (h *History) Len() int {
	return len(h.turns)
}

func (h *History) Clear() {
	h.turns = nil
}
