package telegram

// Лимит Telegram на длину одного сообщения.
const maxMessageLen = 4096

// splitMessage режет текст на максимально длинные куски по limit рун,
// порядок сохраняется, конкатенация кусков равна исходному тексту.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	parts := make([]string, 0, len(runes)/limit+1)
	for len(runes) > 0 {
		n := limit
		if len(runes) < n {
			n = len(runes)
		}
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}

// truncate обрезает текст для логов, чтобы не писать диалог целиком.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
