// Package read реализует HTTP-обработчик получения почтовых реквизитов.
package read

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
	"github.com/magabrotheeeer/rememory/internal/models"
	services "github.com/magabrotheeeer/rememory/internal/services/settings"
)

// Handler обрабатывает запросы на получение почтовых реквизитов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики почтовых реквизитов.
type Service interface {
	Get(ctx context.Context, ident models.Identity, userUID string) (*models.AddressSettings, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Почтовые реквизиты
// @Description Возвращает почтовые реквизиты пользователя для доставки книги.
// @Tags Settings
// @Produce  json
// @Param userId query string false "UID пользователя (по умолчанию — текущий)"
// @Success 200 {object} map[string]any "Реквизиты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Реквизиты не заполнены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/settings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.read"

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

	settings, err := h.service.Get(r.Context(), ident, targetUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			log.Error("access denied", slog.String("target_uid", targetUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		case errors.Is(err, services.ErrSettingsNotFound):
			log.Error("address settings not found", slog.String("target_uid", targetUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("address settings not found"))
		default:
			log.Error("failed to read address settings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read address settings"))
		}
		return
	}

	log.Info("success to read address settings", slog.String("user_uid", targetUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"settings": settings,
	}))
}
