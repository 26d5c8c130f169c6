// Package rememory собирает приложение API-сервера: хранилище с миграциями,
// кеш, SMTP-транспорт, сервисы и HTTP-сервер с корректным завершением.
package rememory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/rememory/internal/cache"
	"github.com/magabrotheeeer/rememory/internal/config"
	"github.com/magabrotheeeer/rememory/internal/lib/htmlpdf"
	"github.com/magabrotheeeer/rememory/internal/lib/jwt"
	"github.com/magabrotheeeer/rememory/internal/lib/smtp"
	"github.com/magabrotheeeer/rememory/internal/migrations"
	authservice "github.com/magabrotheeeer/rememory/internal/services/auth"
	bookservice "github.com/magabrotheeeer/rememory/internal/services/book"
	categoryservice "github.com/magabrotheeeer/rememory/internal/services/category"
	questionservice "github.com/magabrotheeeer/rememory/internal/services/question"
	senderservice "github.com/magabrotheeeer/rememory/internal/services/sender"
	settingsservice "github.com/magabrotheeeer/rememory/internal/services/settings"
	"github.com/magabrotheeeer/rememory/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg, logger)

	authService := authservice.NewAuthService(db, jwtMaker)
	questionService := questionservice.NewQuestionService(db, cacheRedis, logger)
	categoryService := categoryservice.NewCategoryService(db, cacheRedis, logger)
	settingsService := settingsservice.NewSettingsService(db)
	senderService := senderservice.NewSenderService(logger, transport)
	bookService := bookservice.NewBookService(db, htmlpdf.New(), senderService, cfg.OperatorEmail, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger,
		authService, questionService, bookService, categoryService, settingsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
