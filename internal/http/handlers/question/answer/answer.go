// Package answer реализует HTTP-обработчик сохранения ответа на вопрос.
//
// Текст ответа применяется безусловно, статус — только если передан.
// Изменять вопрос может только его владелец или администратор.
package answer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/rememory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rememory/internal/http/response"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	"github.com/magabrotheeeer/rememory/internal/models"
	services "github.com/magabrotheeeer/rememory/internal/services/question"
)

// Handler обрабатывает запросы на сохранение ответа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики ответа на вопрос.
type Service interface {
	Answer(ctx context.Context, ident models.Identity, id string, req models.DummyAnswer) (*models.Question, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить ответ на вопрос
// @Description Применяет текст ответа и, если передан, новый статус вопроса.
// @Tags Questions
// @Accept  json
// @Produce  json
// @Param id path string true "ID вопроса"
// @Param request body models.DummyAnswer true "Ответ и необязательный статус"
// @Success 200 {object} map[string]any "Обновленный вопрос"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Вопрос не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /questions/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.question.answer"

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

	id := chi.URLParam(r, "id")

	var req models.DummyAnswer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("question_id", id))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	question, err := h.service.Answer(r.Context(), ident, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			log.Error("question not found", slog.String("question_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("question not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Error("access denied", slog.String("question_id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		default:
			log.Error("failed to answer question", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not answer question"))
		}
		return
	}

	log.Info("success to answer question", slog.String("question_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"question": question,
	}))
}
