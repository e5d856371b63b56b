// Package remove реализует HTTP-обработчик отписки текущего пользователя
// от стратегии.
//
// Отсутствующая подписка сообщается как 404, состояние при этом не меняется.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/strategy-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
)

// Service описывает интерфейс удаления подписки.
type Service interface {
	Unsubscribe(ctx context.Context, userID, strategyID int) (bool, error)
}

// Handler управляет HTTP-запросами отписки от стратегии.
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
// @Summary Отписаться от стратегии
// @Description Удаляет подписку текущего пользователя на стратегию по её ID.
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID стратегии"
// @Success 200 {object} response.MessageResponse "Подписка удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/strategies/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
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

	strategyID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	ok, err = h.service.Unsubscribe(r.Context(), userID, strategyID)
	if err != nil {
		log.Error("failed to unsubscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	if !ok {
		log.Warn("subscription not found",
			slog.Int("user_id", userID), slog.Int("strategy_id", strategyID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("unsubscription failed"))
		return
	}

	log.Info("unsubscribed from strategy",
		slog.Int("user_id", userID), slog.Int("strategy_id", strategyID))
	render.JSON(w, r, response.Message("successfully unsubscribed from strategy"))
}
