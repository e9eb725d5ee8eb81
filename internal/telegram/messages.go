package telegram

// Тексты, которые видит пользователь. Тексты ошибок фиксированные,
// детали сбоев остаются в логах.
const (
	msgStart = "Привет, %s! 👋\n\n" +
		"Я личный чат-ассистент: отвечаю на вопросы, помогаю с текстами и разбираю фотографии. " +
		"Просто напиши мне сообщение или пришли фото.\n\n" +
		"Команды: /help — подсказка, /reset — начать диалог заново."
	msgHelp = "Напиши мне любой вопрос — я отвечу с учётом нашей переписки.\n" +
		"Пришли фото (можно с подписью) — расскажу, что на нём.\n\n" +
		"/reset — очистить историю диалога и начать заново."
	msgReset     = "История диалога очищена, начнём заново 🙂"
	msgWaiting   = "Думаю над ответом..."
	msgVoiceStub = "Пока что я понимаю только текстовые сообщения. Голос позже тоже научусь распознавать 💬"
	msgBalance   = "Баланс токенов больше не используется, бот для тебя полностью бесплатный 💙"
	msgCharacter = "Смена персонажа отключена, я всегда отвечаю в одном образе ❤️"
	msgErrorAI   = "Произошла ошибка при обработке сообщения 😔 Попробуй отправить его ещё раз."
	msgErrorImg  = "Не удалось обработать изображение 😔"
	msgErrorRoot = "Что-то пошло не так. Попробуй ещё раз чуть позже."
)
