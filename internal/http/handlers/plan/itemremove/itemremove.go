// Package itemremove реализует HTTP-обработчик удаления слота плана.
package itemremove

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
	RemoveItem(ctx context.Context, userUID string, planID, itemID int) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить слот плана
// @Tags Plans
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID плана"
// @Param itemID path int true "ID слота"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Router /plans/{id}/items/{itemID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.itemremove"

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

	planID, err := request.IntParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	itemID, err := request.IntParam(r, "itemID")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.service.RemoveItem(r.Context(), userUID, planID, itemID); err != nil {
		log.Error("failed to remove plan item", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("plan item removed", slog.Int("plan_id", planID), slog.Int("item_id", itemID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_item_id": itemID,
	}))
}
