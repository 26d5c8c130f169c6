// Package list реализует HTTP-обработчик для получения всех персональных
// вопросов пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rememory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rememory/internal/http/response"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	"github.com/magabrotheeeer/rememory/internal/models"
)

// Handler обрабатывает запросы на получение вопросов пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения вопросов.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]*models.Question, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список вопросов пользователя
// @Description Возвращает все персональные вопросы пользователя в порядке создания.
// @Tags Questions
// @Produce  json
// @Param userId query string false "UID пользователя (по умолчанию — текущий)"
// @Success 200 {object} map[string]any "Вопросы пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /questions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.list"

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

	questions, err := h.service.ListForUser(r.Context(), targetUID)
	if err != nil {
		log.Error("failed to list questions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list questions"))
		return
	}

	log.Info("success to list questions", slog.Int("count", len(questions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"questions": questions,
	}))
}
