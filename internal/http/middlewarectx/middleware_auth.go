// Package middlewarectx содержит HTTP middleware контроля доступа.
//
// JWTMiddleware проверяет наличие и валидность токена идентичности
// в заголовке Authorization и кладёт ID пользователя в контекст запроса.
// AdminMiddleware дополнительно требует, чтобы идентичность указывала
// на существующего пользователя с ролью admin.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	libjwt "github.com/magabrotheeeer/strategy-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/strategy-hub/internal/http/response"
	"github.com/magabrotheeeer/strategy-hub/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ для идентификатора пользователя в контексте.
const UserID Key = "user_id"

// TokenParser описывает интерфейс проверки токена идентичности.
type TokenParser interface {
	ParseToken(tokenStr string) (*libjwt.CustomClaims, error)
}

// UserIDFromContext извлекает ID пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserID).(int)
	return id, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен
// в заголовке Authorization (схема Bearer).
//
// Если токен валиден и не просрочен, кладёт ID пользователя в контекст
// запроса, иначе возвращает 401 Unauthorized. Существование пользователя
// здесь не проверяется: токен живёт до истечения срока, а маршруты,
// которым нужна актуальность, перечитывают пользователя сами.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
