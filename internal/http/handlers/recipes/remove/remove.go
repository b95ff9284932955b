// Package remove реализует HTTP-обработчик удаления пользовательского рецепта.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/http/request"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
)

type Service interface {
	Remove(ctx context.Context, userUID string, recipeID int) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить рецепт
// @Tags Recipes
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID рецепта"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipes.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	id, err := request.IntParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.service.Remove(r.Context(), userUID, id); err != nil {
		log.Error("failed to remove recipe", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("recipe removed", slog.Int("recipe_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_recipe_id": id,
	}))
}
