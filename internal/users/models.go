package users

type User struct {
	ID         string  `db:"id" json:"id"`
	TelegramID int64   `db:"telegram_id" json:"telegram_id"`
	Username   *string `db:"username" json:"username,omitempty"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}
