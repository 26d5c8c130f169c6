// Package rememory предоставляет маршруты для основного приложения.
package rememory

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/rememory/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/auth/register"
	bookcompile "github.com/magabrotheeeer/rememory/internal/http/handlers/book/compile"
	categorylist "github.com/magabrotheeeer/rememory/internal/http/handlers/category/list"
	categoryread "github.com/magabrotheeeer/rememory/internal/http/handlers/category/read"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/health"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/question/answer"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/question/create"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/question/createglobal"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/question/global"
	"github.com/magabrotheeeer/rememory/internal/http/handlers/question/instantiate"
	questionlist "github.com/magabrotheeeer/rememory/internal/http/handlers/question/list"
	settingsread "github.com/magabrotheeeer/rememory/internal/http/handlers/settings/read"
	settingsupdate "github.com/magabrotheeeer/rememory/internal/http/handlers/settings/update"
	usercurrent "github.com/magabrotheeeer/rememory/internal/http/handlers/user/current"
	"github.com/magabrotheeeer/rememory/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/rememory/internal/services/auth"
	bookservice "github.com/magabrotheeeer/rememory/internal/services/book"
	categoryservice "github.com/magabrotheeeer/rememory/internal/services/category"
	questionservice "github.com/magabrotheeeer/rememory/internal/services/question"
	settingsservice "github.com/magabrotheeeer/rememory/internal/services/settings"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	questionService *questionservice.QuestionService,
	bookService *bookservice.BookService,
	categoryService *categoryservice.CategoryService,
	settingsService *settingsservice.SettingsService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/questions/global", global.New(logger, questionService).ServeHTTP)
			r.Get("/questions/new", instantiate.New(logger, questionService).ServeHTTP)
			r.Get("/questions", questionlist.New(logger, questionService).ServeHTTP)
			r.Patch("/questions/{id}", answer.New(logger, questionService).ServeHTTP)
			r.Post("/questions/new", create.New(logger, questionService).ServeHTTP)
			r.Post("/questions/newGlobalQuestion", createglobal.New(logger, questionService).ServeHTTP)
			r.Post("/questions/book", bookcompile.New(logger, bookService).ServeHTTP)
			r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
			r.Get("/categories/{id}", categoryread.New(logger, categoryService).ServeHTTP)
			r.Get("/users/current", usercurrent.New(logger, authService).ServeHTTP)
			r.Get("/users/settings", settingsread.New(logger, settingsService).ServeHTTP)
			r.Put("/users/settings", settingsupdate.New(logger, settingsService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
