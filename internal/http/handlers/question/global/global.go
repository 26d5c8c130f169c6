// Package global реализует HTTP-обработчик для чтения каталога вопросов.
//
// Handler возвращает записи каталога, исключая те, что пользователь уже
// скопировал себе, с необязательной фильтрацией по категориям.
package global

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rememory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rememory/internal/http/response"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	"github.com/magabrotheeeer/rememory/internal/models"
)

// Handler обрабатывает запросы на чтение каталога вопросов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения каталога.
type Service interface {
	ListGlobal(ctx context.Context, forUserUID string, categoryIDs []string) ([]*models.GlobalQuestion, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог вопросов
// @Description Возвращает записи каталога без уже скопированных пользователем, с фильтром по категориям.
// @Tags Questions
// @Produce  json
// @Param userId query string false "UID пользователя (по умолчанию — текущий)"
// @Param categoryIds query string false "Список ID категорий через запятую"
// @Success 200 {object} map[string]any "Записи каталога"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /questions/global [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.global"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ident, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	targetUID := r.URL.Query().Get("userId")
	if targetUID == "" {
		targetUID = ident.UserUID
	}
	if !ident.CanAccess(targetUID) {
		log.Error("access denied", slog.String("target_uid", targetUID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	var categoryIDs []string
	if raw := r.URL.Query().Get("categoryIds"); raw != "" {
		categoryIDs = strings.Split(raw, ",")
	}

	questions, err := h.service.ListGlobal(r.Context(), targetUID, categoryIDs)
	if err != nil {
		log.Error("failed to list global questions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list global questions"))
		return
	}

	log.Info("success to list global questions", slog.Int("count", len(questions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"global_questions": questions,
	}))
}
