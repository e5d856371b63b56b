// Package list реализует HTTP-обработчик каталога торговых стратегий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// Service описывает интерфейс чтения каталога стратегий.
type Service interface {
	List(ctx context.Context) ([]*models.Strategy, error)
}

// Handler управляет HTTP-запросами каталога стратегий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог стратегий
// @Description Возвращает все торговые стратегии. Доступно любому аутентифицированному пользователю.
// @Tags Strategies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список стратегий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /strategies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.strategy.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	strategies, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list strategies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("listed strategies", slog.Int("count", len(strategies)))
	render.JSON(w, r, map[string]any{
		"strategies": strategies,
	})
}
