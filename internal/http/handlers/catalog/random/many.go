package random

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/meal-planner/internal/http/request"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type ManyService interface {
	RandomMany(ctx context.Context, count int) ([]models.Recipe, error)
}

// ManyHandler отдаёт несколько случайных рецептов.
type ManyHandler struct {
	log     *slog.Logger
	service ManyService
}

func NewMany(log *slog.Logger, service ManyService) *ManyHandler {
	return &ManyHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Несколько случайных рецептов
// @Tags Catalog
// @Produce  json
// @Param count path int true "Число рецептов, от 1 до 20"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /random/{count} [get]
func (h *ManyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.random.many"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	count, err := request.IntParam(r, "count")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	recipes, err := h.service.RandomMany(r.Context(), count)
	if err != nil {
		log.Error("failed to get random recipes", slog.Int("count", count), sl.Err(err))
		response.FromError(w, r, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	}))
}
