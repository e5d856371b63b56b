// Package strategyhub собирает приложение: хранилище, миграции, первичное
// наполнение базы, сервисы и HTTP-сервер.
package strategyhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/strategy-hub/internal/config"
	libjwt "github.com/magabrotheeeer/strategy-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/strategy-hub/internal/migrations"
	strategyservice "github.com/magabrotheeeer/strategy-hub/internal/services/strategy"
	userservice "github.com/magabrotheeeer/strategy-hub/internal/services/user"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и соединение с базой данных.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: подключается к базе, применяет миграции,
// при включённом флаге выполняет первичное наполнение и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if cfg.EnableSeeding {
		if err = db.Seed(ctx); err != nil {
			return nil, err
		}
		logger.Info("database seeding completed")
	}

	jwtMaker := libjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	userService := userservice.New(db, logger)
	strategyService := strategyservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, userService, strategyService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. При остановке контекста сервер завершается корректно.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
