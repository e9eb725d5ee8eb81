package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	query := `
		SELECT id, telegram_id, username, created_at
		FROM users
		WHERE telegram_id = ?
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, telegramID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по telegram_id %d: %w", telegramID, err)
	}
	return &user, nil
}

// FirstOrCreate идемпотентен: повторный вызов с тем же telegram_id
// возвращает уже существующую запись, вторая строка не создаётся.
func (r *Repository) FirstOrCreate(ctx context.Context, telegramID int64, name string) (*User, error) {
	query := `
		INSERT OR IGNORE INTO users (id, telegram_id, username, created_at)
		VALUES (?, ?, ?, ?)
	`

	var username *string
	if name != "" {
		username = &name
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx, query, id, telegramID, username, createdAt); err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя с telegram_id %d: %w", telegramID, err)
	}

	user, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("пользователь с telegram_id %d не найден после создания", telegramID)
	}
	return user, nil
}
