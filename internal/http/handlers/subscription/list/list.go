// Package list реализует HTTP-обработчик списка стратегий текущего пользователя.
//
// Идентичность берётся из контекста запроса, положенного JWT middleware;
// роль не проверяется.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/strategy-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// Service описывает интерфейс чтения подписок пользователя.
type Service interface {
	ListForUser(ctx context.Context, userID int) ([]*models.Strategy, error)
}

// Handler управляет HTTP-запросами списка подписок текущего пользователя.
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
// @Summary Стратегии текущего пользователя
// @Description Возвращает стратегии, на которые подписан текущий пользователь.
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список стратегий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/strategies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	strategies, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list user strategies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("listed user strategies",
		slog.Int("user_id", userID), slog.Int("count", len(strategies)))
	render.JSON(w, r, map[string]any{
		"strategies": strategies,
	})
}
