package users

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			telegram_id INTEGER UNIQUE NOT NULL,
			username TEXT,
			created_at TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func TestFirstOrCreate_CreatesUser(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.FirstOrCreate(ctx, 123, "Alice")
	if err != nil {
		t.Fatalf("FirstOrCreate: %v", err)
	}
	if user.ID == "" {
		t.Error("expected non-empty user id")
	}
	if user.TelegramID != 123 {
		t.Errorf("expected telegram_id 123, got %d", user.TelegramID)
	}
	if user.Username == nil || *user.Username != "Alice" {
		t.Errorf("expected username Alice, got %v", user.Username)
	}
	if user.CreatedAt == "" {
		t.Error("expected non-empty created_at")
	}
}

func TestFirstOrCreate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.FirstOrCreate(ctx, 42, "Bob")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := repo.FirstOrCreate(ctx, 42, "Bob")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same id, got %q and %q", first.ID, second.ID)
	}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestFirstOrCreate_EmptyName(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	user, err := repo.FirstOrCreate(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("FirstOrCreate: %v", err)
	}
	if user.Username != nil {
		t.Errorf("expected NULL username, got %q", *user.Username)
	}
}

func TestGetByTelegramID_NotFound(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	user, err := repo.GetByTelegramID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByTelegramID: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}
