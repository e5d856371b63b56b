// Package strategyhub предоставляет маршруты приложения.
package strategyhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/strategy-hub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/strategy-hub/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/strategy-hub/internal/http/handlers/health"
	strategylist "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/strategy/list"
	strategyread "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/strategy/read"
	subscriptioncreate "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/subscription/create"
	subscriptionlist "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/subscription/list"
	subscriptionremove "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/subscription/remove"
	userlist "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/user/list"
	userremove "github.com/magabrotheeeer/strategy-hub/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/strategy-hub/internal/http/middlewarectx"
	libjwt "github.com/magabrotheeeer/strategy-hub/internal/lib/jwt"
	strategyservice "github.com/magabrotheeeer/strategy-hub/internal/services/strategy"
	userservice "github.com/magabrotheeeer/strategy-hub/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker libjwt.Maker,
	userService *userservice.Service, strategyService *strategyservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Get("/health", health.New())
	r.Post("/login", login.New(logger, userService, jwtMaker).ServeHTTP)
	r.Post("/register", register.New(logger, userService, jwtMaker).ServeHTTP)

	// Группа с проверкой токена идентичности
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))

		r.Get("/strategies", strategylist.New(logger, strategyService).ServeHTTP)
		r.Get("/strategies/{id}", strategyread.New(logger, strategyService).ServeHTTP)
		r.Get("/user/strategies", subscriptionlist.New(logger, strategyService).ServeHTTP)
		r.Post("/user/strategies/{id}", subscriptioncreate.New(logger, strategyService).ServeHTTP)
		r.Delete("/user/strategies/{id}", subscriptionremove.New(logger, strategyService).ServeHTTP)

		// Административные маршруты: роль admin перечитывается из базы
		// на каждом запросе.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AdminMiddleware(userService, logger))

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
