// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает JSON-запрос с username, email и паролем, валидирует его,
// создает учетную запись через сервис пользователей и возвращает токен
// идентичности вместе с данными созданного пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// RegisterRequest — тело запроса регистрации.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

// TokenIssuer описывает интерфейс выпуска токена идентичности.
type TokenIssuer interface {
	GenerateToken(userID int) (string, error)
}

// Handler управляет HTTP-запросами на регистрацию пользователей.
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
// @Summary Регистрация нового пользователя
// @Description Создает учетную запись с ролью user и возвращает токен идентичности.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные регистрации"
// @Success 201 {object} map[string]any "Токен и созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Username или email уже заняты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req RegisterRequest
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

	u, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Warn("duplicate username or email", slog.String("username", req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("username already exists"))
			return
		}
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	token, err := h.jwtMaker.GenerateToken(u.ID)
	if err != nil {
		log.Error("could not generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate token"))
		return
	}

	log.Info("registered new user", slog.Int("id", u.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"token": token,
		"user":  u,
	})
}
