// Package compile реализует HTTP-обработчик заказа книги.
//
// Обработчик синхронно собирает PDF из отвеченных вопросов пользователя и
// отправляет его оператору печати вместе с почтовыми реквизитами. Ответ
// возвращается только после завершения отправки.
package compile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rememory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rememory/internal/http/response"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	services "github.com/magabrotheeeer/rememory/internal/services/book"
)

// Handler обрабатывает запросы на заказ книги.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики компиляции и отправки книги.
type Service interface {
	CompileAndSend(ctx context.Context, userUID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Заказать книгу
// @Description Собирает отвеченные вопросы в PDF и отправляет оператору печати. Выполняется синхронно.
// @Tags Book
// @Produce  json
// @Param userId query string false "UID пользователя (по умолчанию — текущий)"
// @Success 200 {object} map[string]any "Книга отправлена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 422 {object} response.ErrorResponse "Нет реквизитов или отвеченных вопросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка рендеринга или отправки"
// @Router /questions/book [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.compile"

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

	err := h.service.CompileAndSend(r.Context(), targetUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAddressSettings):
			log.Error("address settings are not filled in", slog.String("user_uid", targetUID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("address settings are not filled in"))
		case errors.Is(err, services.ErrNoAnsweredQuestions):
			log.Error("no answered questions to compile", slog.String("user_uid", targetUID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("no answered questions to compile"))
		default:
			log.Error("failed to compile and send book", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not compile and send book"))
		}
		return
	}

	log.Info("success to compile and send book", slog.String("user_uid", targetUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "book compiled and sent to operator",
	}))
}
