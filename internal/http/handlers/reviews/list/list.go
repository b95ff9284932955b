// Package list реализует HTTP-обработчик отзывов о рецепте каталога.
// Маршрут публичный: отзывы видны без авторизации.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/paging"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type Service interface {
	ListForRecipe(ctx context.Context, externalID string, limit, offset int) ([]*models.Review, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отзывы о рецепте
// @Tags Reviews
// @Produce  json
// @Param externalID path string true "ID рецепта каталога"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Router /reviews/recipe/{externalID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reviews.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	externalID := strings.TrimSpace(chi.URLParam(r, "externalID"))
	if externalID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("recipe id is required"))
		return
	}

	limit, offset, err := paging.FromQuery(r)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	reviews, err := h.service.ListForRecipe(r.Context(), externalID, limit, offset)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"reviews": reviews,
		"count":   len(reviews),
	}))
}
