// Package list реализует HTTP-обработчик получения списка категорий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rememory/internal/http/response"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	"github.com/magabrotheeeer/rememory/internal/models"
)

// Handler обрабатывает запросы на получение категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения категорий.
type Service interface {
	List(ctx context.Context) ([]*models.Category, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список категорий
// @Description Возвращает все категории вопросов.
// @Tags Categories
// @Produce  json
// @Success 200 {object} map[string]any "Категории"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list categories"))
		return
	}

	log.Info("success to list categories", slog.Int("count", len(categories)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories": categories,
	}))
}
