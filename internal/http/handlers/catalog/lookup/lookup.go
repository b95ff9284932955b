// Package lookup полный рецепт внешнего каталога по идентификатору.
package lookup

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type Service interface {
	Lookup(ctx context.Context, id string) (*models.Recipe, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Рецепт каталога по id
// @Tags Catalog
// @Produce  json
// @Param id path string true "Идентификатор рецепта в каталоге"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /catalog/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.lookup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	recipe, err := h.service.Lookup(r.Context(), id)
	if err != nil {
		log.Warn("lookup failed", slog.String("recipe_id", id), sl.Err(err))
		response.FromError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe": recipe,
	}))
}
