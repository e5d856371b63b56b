// Package strategy содержит бизнес-логику работы с торговыми стратегиями
// и подписками пользователей на них. Состояние между запросами не
// кэшируется: каждое чтение заново обращается к хранилищу.
package strategy

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// Repository определяет методы для работы со стратегиями в хранилище.
type Repository interface {
	// ListStrategies возвращает все стратегии в порядке создания.
	ListStrategies(ctx context.Context) ([]*models.Strategy, error)
	// GetStrategyByID возвращает стратегию по ID, ErrStrategyNotFound при отсутствии.
	GetStrategyByID(ctx context.Context, id int) (*models.Strategy, error)
	// ListStrategiesForUser возвращает стратегии, на которые подписан пользователь.
	ListStrategiesForUser(ctx context.Context, userID int) ([]*models.Strategy, error)
	// Subscribe создает подписку, false при уже существующей паре.
	Subscribe(ctx context.Context, userID, strategyID int) (bool, error)
	// Unsubscribe удаляет подписку, false при отсутствующей паре.
	Unsubscribe(ctx context.Context, userID, strategyID int) (bool, error)
}

// Service реализует бизнес-логику работы со стратегиями.
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

// List возвращает каталог стратегий.
func (s *Service) List(ctx context.Context) ([]*models.Strategy, error) {
	return s.repo.ListStrategies(ctx)
}

// Get возвращает стратегию по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Strategy, error) {
	return s.repo.GetStrategyByID(ctx, id)
}

// ListForUser возвращает стратегии, на которые подписан пользователь.
func (s *Service) ListForUser(ctx context.Context, userID int) ([]*models.Strategy, error) {
	return s.repo.ListStrategiesForUser(ctx, userID)
}

// Subscribe подписывает пользователя на стратегию. Повторная подписка
// на ту же стратегию возвращает false и не меняет состояние.
func (s *Service) Subscribe(ctx context.Context, userID, strategyID int) (bool, error) {
	ok, err := s.repo.Subscribe(ctx, userID, strategyID)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Info("subscribed user to strategy",
			slog.Int("user_id", userID), slog.Int("strategy_id", strategyID))
	}
	return ok, nil
}

// Unsubscribe отписывает пользователя от стратегии. Отсутствующая
// подписка возвращает false и не меняет состояние.
func (s *Service) Unsubscribe(ctx context.Context, userID, strategyID int) (bool, error) {
	ok, err := s.repo.Unsubscribe(ctx, userID, strategyID)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Info("unsubscribed user from strategy",
			slog.Int("user_id", userID), slog.Int("strategy_id", strategyID))
	}
	return ok, nil
}
