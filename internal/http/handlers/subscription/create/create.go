// Package create реализует HTTP-обработчик подписки текущего пользователя
// на стратегию.
//
// Повторная подписка на ту же стратегию не создает вторую строку
// и возвращает 400, как и подписка на несуществующую стратегию.
package create

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

// Service описывает интерфейс создания подписки.
type Service interface {
	Subscribe(ctx context.Context, userID, strategyID int) (bool, error)
}

// Handler управляет HTTP-запросами подписки на стратегию.
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
// @Summary Подписаться на стратегию
// @Description Подписывает текущего пользователя на стратегию по её ID.
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID стратегии"
// @Success 200 {object} response.MessageResponse "Подписка создана"
// @Failure 400 {object} response.ErrorResponse "Подписка не выполнена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/strategies/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
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

	ok, err = h.service.Subscribe(r.Context(), userID, strategyID)
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	if !ok {
		log.Warn("subscription not created",
			slog.Int("user_id", userID), slog.Int("strategy_id", strategyID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("subscription failed"))
		return
	}

	log.Info("subscribed to strategy",
		slog.Int("user_id", userID), slog.Int("strategy_id", strategyID))
	render.JSON(w, r, response.Message("successfully subscribed to strategy"))
}
