// Package login реализует HTTP-обработчик входа по паре username/password.
//
// Handler валидирует запрос, проверяет учетные данные через сервис
// пользователей и при успехе возвращает токен идентичности. Неизвестный
// username и неверный пароль дают одинаковый ответ 401.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
)

// LoginRequest — тело запроса входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	// Authenticate возвращает (nil, nil), если учетные данные неверны.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer описывает интерфейс выпуска токена идентичности.
type TokenIssuer interface {
	GenerateToken(userID int) (string, error)
}

// Handler управляет HTTP-запросами на вход пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	jwtMaker TokenIssuer
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером, сервисом и выпуском токенов.
func New(log *slog.Logger, service Service, jwtMaker TokenIssuer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		jwtMaker: jwtMaker,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет учетные данные и возвращает токен идентичности со сроком действия один час.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учетные данные"
// @Success 200 {object} map[string]any "Токен и пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные имя пользователя или пароль"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	u, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("failed to authenticate user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}
	if u == nil {
		log.Warn("incorrect username or password", slog.String("username", req.Username))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid username or password"))
		return
	}

	token, err := h.jwtMaker.GenerateToken(u.ID)
	if err != nil {
		log.Error("could not generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate token"))
		return
	}

	log.Info("user logged in", slog.Int("id", u.ID))
	render.JSON(w, r, map[string]any{
		"token": token,
		"user":  u,
	})
}
