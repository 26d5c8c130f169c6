// Package instantiate реализует HTTP-обработчик копирования записей каталога
// в персональные вопросы пользователя.
//
// Отсутствующие в каталоге идентификаторы молча пропускаются; повторное
// копирование одной и той же записи создает дубликат.
package instantiate

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

// Handler обрабатывает запросы на копирование записей каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики копирования.
type Service interface {
	Instantiate(ctx context.Context, userUID string, globalQuestionIDs []string) ([]*models.Question, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Скопировать вопросы из каталога
// @Description Создает персональные копии указанных записей каталога. Отсутствующие ID пропускаются.
// @Tags Questions
// @Produce  json
// @Param userId query string false "UID пользователя (по умолчанию — текущий)"
// @Param globalQuestionIds query string true "Список ID записей каталога через запятую"
// @Success 200 {object} map[string]any "Созданные вопросы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /questions/new [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.instantiate"

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

	var ids []string
	if raw := r.URL.Query().Get("globalQuestionIds"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	questions, err := h.service.Instantiate(r.Context(), targetUID, ids)
	if err != nil {
		log.Error("failed to instantiate questions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not instantiate questions"))
		return
	}

	log.Info("success to instantiate questions",
		slog.Int("requested", len(ids)), slog.Int("created", len(questions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"questions": questions,
	}))
}
