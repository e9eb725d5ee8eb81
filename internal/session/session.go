package session

import (
	"sync"

	"assistantbot/internal/history"

	"github.com/sirupsen/logrus"
)

// UserSession привязывает пользователя к его журналу диалога.
// Журнал принадлежит сессии эксклюзивно; mu сериализует сообщения
// одного пользователя, разные пользователи обрабатываются параллельно.
type UserSession struct {
	UserID     string
	TelegramID int64
	Firstname  string
	Character  string
	History    *history.History

	mu sync.Mutex
}

func (s *UserSession) Lock()   { s.mu.Lock() }
func (s *UserSession) Unlock() { s.mu.Unlock() }

// Manager хранит сессии по telegram id. Сессии живут до завершения
// процесса, автоматического истечения нет.
type Manager struct {
	mu        sync.Mutex
	sessions  map[int64]*UserSession
	character string
}

func NewManager(character string) *Manager {
	return &Manager{
		sessions:  make(map[int64]*UserSession),
		character: character,
	}
}

func (m *Manager) GetOrCreate(telegramID int64, userID, firstname string) *UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[telegramID]; ok {
		return sess
	}

	sess := &UserSession{
		UserID:     userID,
		TelegramID: telegramID,
		Firstname:  firstname,
		Character:  m.character,
		History:    history.New(),
	}
	m.sessions[telegramID] = sess
	logrus.Debugf("Создана сессия для пользователя %s (telegram_id=%d)", userID, telegramID)
	return sess
}

// Reset очищает журнал, персонаж сохраняется.
func (m *Manager) Reset(telegramID int64) *UserSession {
	m.mu.Lock()
	sess, ok := m.sessions[telegramID]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	sess.Lock()
	sess.History.Clear()
	sess.Unlock()
	logrus.Debugf("Сброшена сессия telegram_id=%d", telegramID)
	return sess
}
