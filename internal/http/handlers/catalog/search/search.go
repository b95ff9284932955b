// Package search поиск рецептов во внешнем каталоге по имени, ингредиенту, категории или кухне.
package search

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
	"github.com/magabrotheeeer/meal-planner/internal/mealdb"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type Service interface {
	Search(ctx context.Context, criterion mealdb.Criterion, value string) ([]models.Recipe, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск рецептов
// @Description Для критериев ingredient, category и area каталог возвращает только id, название и картинку.
// @Tags Catalog
// @Produce  json
// @Param criterion path string true "name | ingredient | category | area | letter"
// @Param term path string true "Строка поиска"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse "Неизвестный критерий"
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /search/{criterion}/{term} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	criterion, err := mealdb.ParseCriterion(chi.URLParam(r, "criterion"))
	if err != nil {
		log.Warn("bad criterion", sl.Err(err))
		response.FromError(w, r, err)
		return
	}
	term := strings.TrimSpace(chi.URLParam(r, "term"))

	recipes, err := h.service.Search(r.Context(), criterion, term)
	if err != nil {
		log.Error("search failed", slog.String("criterion", string(criterion)), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Debug("search done", slog.Int("found", len(recipes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	}))
}
