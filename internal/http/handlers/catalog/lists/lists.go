// Package lists справочники каталога: категории, кухни и ингредиенты.
package lists

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
)

type Service interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListAreas(ctx context.Context) ([]string, error)
	ListIngredients(ctx context.Context) ([]string, error)
}

// Handler отдаёт один справочник, выбранный при создании.
type Handler struct {
	log  *slog.Logger
	name string
	list func(ctx context.Context) ([]string, error)
}

// NewCategories обработчик GET /categories.
//
// @Summary Категории блюд
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /categories [get]
func NewCategories(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, name: "categories", list: service.ListCategories}
}

// NewAreas обработчик GET /areas.
//
// @Summary Кухни
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any
// @Router /areas [get]
func NewAreas(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, name: "areas", list: service.ListAreas}
}

// NewIngredients обработчик GET /ingredients.
//
// @Summary Ингредиенты
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any
// @Router /ingredients [get]
func NewIngredients(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, name: "ingredients", list: service.ListIngredients}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.lists"

	items, err := h.list(r.Context())
	if err != nil {
		h.log.Error("failed to list "+h.name,
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err))
		response.FromError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		h.name: items,
	}))
}
