// Package itemupdate реализует HTTP-обработчик частичного изменения слота плана.
// Можно заменить рецепт, приём пищи или оба поля сразу.
package itemupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/http/request"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Handler обрабатывает HTTP-запросы на изменение слота.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service определяет интерфейс бизнес-логики изменения слота.
type Service interface {
	UpdateItem(ctx context.Context, userUID string, planID, itemID int, req models.UpdatePlanItemRequest) (*models.MealPlanItem, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить слот плана
// @Tags Plans
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID плана"
// @Param itemID path int true "ID слота"
// @Param request body models.UpdatePlanItemRequest true "Новые значения"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /plans/{id}/items/{itemID} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.itemupdate"

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

	var req models.UpdatePlanItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), userUID, planID, itemID, req)
	if err != nil {
		log.Error("failed to update plan item", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("plan item updated", slog.Int("plan_id", planID), slog.Int("item_id", itemID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"item": item,
	}))
}
