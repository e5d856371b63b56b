// Package user содержит бизнес-логику управления пользователями:
// регистрацию, аутентификацию, чтение и удаление учетных записей.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/strategy-hub/internal/lib/password"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	// CreateUser сохраняет нового пользователя, возвращает ErrDuplicate при занятых username/email.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	// GetUserByUsername возвращает полную запись, включая хэш пароля.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByID возвращает пользователя без хэша пароля.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// ListUsers возвращает всех пользователей без хэшей паролей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateLastLogin отмечает успешный вход и возвращает новое значение last_login.
	UpdateLastLogin(ctx context.Context, id int) (time.Time, error)
	// DeleteUser удаляет пользователя вместе с подписками и настройками.
	DeleteUser(ctx context.Context, id int) (bool, error)
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Register регистрирует нового пользователя: хэширует пароль и сохраняет
// запись с ролью user. Занятый username или email приводят к ErrDuplicate
// без изменения существующих строк.
func (s *Service) Register(ctx context.Context, username, email, plainPassword string) (*models.User, error) {
	hash, err := password.GetHash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.CreateUser(ctx, username, email, hash)
	if err != nil {
		return nil, err
	}

	s.log.Info("registered new user", slog.Int("id", u.ID), slog.String("username", u.Username))
	return u, nil
}

// Authenticate проверяет пару username/password. При успехе обновляет
// last_login и возвращает пользователя без хэша пароля. Неизвестный
// username и неверный пароль неразличимы: в обоих случаях возвращается
// (nil, nil).
func (s *Service) Authenticate(ctx context.Context, username, plainPassword string) (*models.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !password.Verify(u.PasswordHash, plainPassword) {
		return nil, nil
	}

	lastLogin, err := s.repo.UpdateLastLogin(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.LastLogin = lastLogin
	u.PasswordHash = ""

	s.log.Info("user authenticated", slog.Int("id", u.ID))
	return u, nil
}

// GetByID возвращает пользователя по ID без хэша пароля.
func (s *Service) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// List возвращает всех пользователей без хэшей паролей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Delete удаляет пользователя вместе с его подписками и настройками.
// Возвращает true, если запись существовала.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	ok, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		s.log.Error("failed to delete user", slog.Int("id", id), sl.Err(err))
		return false, err
	}
	if ok {
		s.log.Info("deleted user", slog.Int("id", id))
	}
	return ok, nil
}
