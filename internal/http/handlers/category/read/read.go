// Package read реализует HTTP-обработчик получения категории по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rememory/internal/http/response"
	"github.com/magabrotheeeer/rememory/internal/lib/sl"
	"github.com/magabrotheeeer/rememory/internal/models"
	services "github.com/magabrotheeeer/rememory/internal/services/category"
)

// Handler обрабатывает запросы на получение категории по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения категории.
type Service interface {
	Get(ctx context.Context, id string) (*models.Category, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Категория по ID
// @Description Возвращает категорию вопросов по её идентификатору.
// @Tags Categories
// @Produce  json
// @Param id path string true "ID категории"
// @Success 200 {object} map[string]any "Категория"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /categories/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			log.Error("category not found", slog.String("category_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("category not found"))
			return
		}
		log.Error("failed to read category", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read category"))
		return
	}

	log.Info("success to read category", slog.String("category_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"category": category,
	}))
}
