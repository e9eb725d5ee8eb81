package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"assistantbot/internal/chat"
	"assistantbot/internal/provider"
	"assistantbot/internal/session"
	"assistantbot/internal/users"
	"assistantbot/pkg/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Интервал повтора действия "печатает", https://core.telegram.org/bots/api#sendchataction
const typingInterval = 5 * time.Second

type Handler struct {
	bot         *tgbotapi.BotAPI
	chatService *chat.Service
	sessions    *session.Manager
	userService *users.Service
	cfg         *config.Config
}

func NewHandler(
	cfg *config.Config,
	chatService *chat.Service,
	sessions *session.Manager,
	userService *users.Service,
) (*Handler, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации Telegram бота: %w", err)
	}

	logrus.Infof("Telegram бот запущен: %s", bot.Self.UserName)

	return &Handler{
		bot:         bot,
		chatService: chatService,
		sessions:    sessions,
		userService: userService,
		cfg:         cfg,
	}, nil
}

// Run читает обновления через long polling до отмены контекста.
// Каждое сообщение обрабатывается в отдельной горутине; сообщения одного
// пользователя сериализуются уже внутри сессии.
func (h *Handler) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
		return
	}

	if msg.Voice != nil || msg.Audio != nil {
		h.reply(msg.Chat.ID, msgVoiceStub)
		return
	}

	if len(msg.Photo) > 0 {
		h.handlePhotoMessage(ctx, msg)
		return
	}

	if msg.Text != "" {
		h.handleTextMessage(ctx, msg)
		return
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		sess := h.getSession(ctx, msg)
		h.reply(msg.Chat.ID, fmt.Sprintf(msgStart, sess.Firstname))
	case "help":
		h.reply(msg.Chat.ID, msgHelp)
	case "reset":
		h.sessions.Reset(msg.From.ID)
		h.reply(msg.Chat.ID, msgReset)
	case "balance":
		h.reply(msg.Chat.ID, msgBalance)
	case "character":
		h.reply(msg.Chat.ID, msgCharacter)
	}
}

func (h *Handler) handleTextMessage(ctx context.Context, msg *tgbotapi.Message) {
	stopTyping := h.startTyping(msg.Chat.ID)
	defer stopTyping()

	sess := h.getSession(ctx, msg)
	logrus.Infof("[ЧАТ] %s отправил: %q", sess.Firstname, truncate(msg.Text, 100))

	waitID, err := h.sendWaiting(msg)
	if err != nil {
		logrus.Errorf("Ошибка при отправке сообщения ожидания: %v", err)
		return
	}

	answer, err := h.chatService.SendMessage(ctx, sess, msg.Text, nil)
	if err != nil {
		h.editMessage(msg.Chat.ID, waitID, msgErrorAI)
		return
	}

	logrus.Infof("[ЧАТ] Бот ответил %s: %q", sess.Firstname, truncate(answer, 100))
	h.sendAnswer(msg.Chat.ID, waitID, answer)
}

func (h *Handler) handlePhotoMessage(ctx context.Context, msg *tgbotapi.Message) {
	stopTyping := h.startTyping(msg.Chat.ID)
	defer stopTyping()

	sess := h.getSession(ctx, msg)

	// Берём фото наибольшего размера — оно последнее в списке.
	largest := msg.Photo[len(msg.Photo)-1]
	logrus.Infof("[ФОТО] %s отправил фото %dx%d, подпись: %q",
		sess.Firstname, largest.Width, largest.Height, truncate(msg.Caption, 100))

	waitID, err := h.sendWaiting(msg)
	if err != nil {
		logrus.Errorf("Ошибка при отправке сообщения ожидания: %v", err)
		return
	}

	image, err := h.downloadImage(ctx, largest.FileID)
	if err != nil {
		logrus.Errorf("[ФОТО] Ошибка при загрузке изображения: %v", err)
		h.editMessage(msg.Chat.ID, waitID, msgErrorImg)
		return
	}

	h.forwardPhotoToAdmin(sess, largest.FileID, msg.Caption)

	answer, err := h.chatService.SendMessage(ctx, sess, msg.Caption, []provider.ImageAttachment{*image})
	if err != nil {
		h.editMessage(msg.Chat.ID, waitID, msgErrorAI)
		return
	}

	logrus.Infof("[ФОТО] Бот ответил %s: %q", sess.Firstname, truncate(answer, 100))
	h.sendAnswer(msg.Chat.ID, waitID, answer)
}

// getSession регистрирует пользователя в реестре и возвращает его сессию.
func (h *Handler) getSession(ctx context.Context, msg *tgbotapi.Message) *session.UserSession {
	userID := fmt.Sprintf("%d", msg.From.ID)
	user, err := h.userService.FirstOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		logrus.Errorf("Ошибка при сохранении пользователя %d: %v", msg.From.ID, err)
	} else {
		userID = user.ID
	}
	return h.sessions.GetOrCreate(msg.From.ID, userID, msg.From.FirstName)
}

// downloadImage скачивает вложение и определяет mime-тип по расширению файла.
func (h *Handler) downloadImage(ctx context.Context, fileID string) (*provider.ImageAttachment, error) {
	fileURL, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении URL файла: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса на загрузку: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке файла: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении данных изображения: %w", err)
	}

	return &provider.ImageAttachment{
		Data:     data,
		MIMEType: mimeTypeByExt(fileURL),
	}, nil
}

func mimeTypeByExt(fileURL string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(fileURL), ".")) {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// forwardPhotoToAdmin пересылает фото администратору, если тот настроен.
// Ошибка пересылки не влияет на обработку сообщения.
func (h *Handler) forwardPhotoToAdmin(sess *session.UserSession, fileID string, caption string) {
	if h.cfg.AdminChatID == 0 {
		return
	}
	photo := tgbotapi.NewPhoto(h.cfg.AdminChatID, tgbotapi.FileID(fileID))
	photo.Caption = fmt.Sprintf("📷 От %s", sess.Firstname)
	if caption != "" {
		photo.Caption += fmt.Sprintf(": %q", caption)
	}
	if _, err := h.bot.Send(photo); err != nil {
		logrus.Errorf("[ФОТО] Ошибка при пересылке администратору: %v", err)
	}
}

// startTyping шлёт действие "печатает" каждые 5 секунд, пока не вызвана
// возвращённая функция. Вызывается defer-ом на всех путях выхода.
func (h *Handler) startTyping(chatID int64) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		h.sendTyping(chatID)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				h.sendTyping(chatID)
			}
		}
	}()
	return func() { close(done) }
}

func (h *Handler) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.bot.Request(action); err != nil {
		logrus.Debugf("Ошибка при отправке действия typing: %v", err)
	}
}

// sendWaiting отправляет заглушку "думаю" ответом на сообщение пользователя.
func (h *Handler) sendWaiting(msg *tgbotapi.Message) (int, error) {
	wait := tgbotapi.NewMessage(msg.Chat.ID, msgWaiting)
	wait.ReplyToMessageID = msg.MessageID
	sent, err := h.bot.Send(wait)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// sendAnswer разбивает ответ по лимиту Telegram: первый кусок заменяет
// заглушку, остальные отправляются новыми сообщениями по порядку.
func (h *Handler) sendAnswer(chatID int64, waitMessageID int, answer string) {
	parts := splitMessage(answer, maxMessageLen)
	h.editMessage(chatID, waitMessageID, parts[0])
	for _, part := range parts[1:] {
		h.reply(chatID, part)
	}
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		logrus.Errorf("Ошибка при отправке сообщения: %v", err)
	}
}

func (h *Handler) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := h.bot.Send(edit); err != nil {
		logrus.Errorf("Ошибка при редактировании сообщения: %v", err)
	}
}
