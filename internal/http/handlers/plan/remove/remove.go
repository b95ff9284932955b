// Package remove реализует HTTP-обработчик удаления плана питания.
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

// Handler обрабатывает HTTP-запросы на удаление плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service определяет интерфейс бизнес-логики удаления плана.
type Service interface {
	Remove(ctx context.Context, userUID string, planID int) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить план
// @Description Слоты плана удаляются вместе с ним.
// @Tags Plans
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID плана"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Router /plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"

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
		log.Error("failed to decode id from url", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	if err := h.service.Remove(r.Context(), userUID, id); err != nil {
		log.Error("failed to remove plan", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("plan removed", slog.Int("plan_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_plan_id": id,
	}))
}
