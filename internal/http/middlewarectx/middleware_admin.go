package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
	"github.com/magabrotheeeer/strategy-hub/internal/models"
	"github.com/magabrotheeeer/strategy-hub/internal/storage/repository"
)

// UserGetter описывает интерфейс чтения пользователя по ID.
type UserGetter interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// AdminMiddleware возвращает middleware для административных маршрутов.
// Пользователь перечитывается из хранилища на каждом запросе: токен мог
// быть выпущен до удаления учетной записи или смены роли. Удалённый
// пользователь и пользователь без роли admin получают одинаковый отказ
// 403, чтобы не раскрывать, какая из проверок не прошла.
func AdminMiddleware(users UserGetter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					log.Warn("token subject no longer exists", slog.Int("user_id", userID))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("unauthorized"))
					return
				}
				log.Error("failed to load user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}

			if u.Role != models.RoleAdmin {
				log.Warn("admin route denied", slog.Int("user_id", userID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
