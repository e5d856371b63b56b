// Package read реализует HTTP-обработчик чтения одной торговой стратегии.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// Service описывает интерфейс чтения стратегии по ID.
type Service interface {
	Get(ctx context.Context, id int) (*models.Strategy, error)
}

// Handler управляет HTTP-запросами чтения стратегии.
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
// @Summary Получить стратегию
// @Description Возвращает торговую стратегию по её ID.
// @Tags Strategies
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID стратегии"
// @Success 200 {object} map[string]any "Стратегия"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Стратегия не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /strategies/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.strategy.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	st, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStrategyNotFound) {
			log.Warn("strategy not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("strategy not found"))
			return
		}
		log.Error("failed to read strategy", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("read strategy", slog.Int("id", id))
	render.JSON(w, r, map[string]any{
		"strategy": st,
	})
}
