package users

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("пользователь не найден")

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FirstOrCreate(ctx context.Context, telegramID int64, name string) (*User, error) {
	logrus.Debugf("Регистрация пользователя telegram_id=%d", telegramID)
	return s.repo.FirstOrCreate(ctx, telegramID, name)
}

func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
