// Package propose подбор одного рецепта по ингредиенту или случайного.
package propose

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Request тело запроса. Пустое тело означает случайный рецепт.
type Request struct {
	Ingredient string `json:"ingredient,omitempty"`
}

type Service interface {
	Propose(ctx context.Context, ingredient string) (*models.Recipe, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подобрать рецепт
// @Tags Catalog
// @Accept  json
// @Produce  json
// @Param request body Request false "Ингредиент"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse "Нет рецептов с ингредиентом"
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /propose [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.propose"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	recipe, err := h.service.Propose(r.Context(), req.Ingredient)
	if err != nil {
		log.Warn("no recipe proposed", slog.String("ingredient", req.Ingredient), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("recipe proposed", slog.String("recipe_id", recipe.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe": recipe,
	}))
}
