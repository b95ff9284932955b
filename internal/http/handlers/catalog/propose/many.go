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

// defaultCount число рецептов, если count не передан.
const defaultCount = 3

// ManyRequest тело запроса подбора нескольких рецептов.
type ManyRequest struct {
	Ingredient string `json:"ingredient,omitempty"`
	Count      *int   `json:"count,omitempty" example:"3"`
}

type ManyService interface {
	ProposeMany(ctx context.Context, ingredient string, count int) ([]models.Recipe, error)
}

// ManyHandler подбирает несколько рецептов за запрос.
type ManyHandler struct {
	log     *slog.Logger
	service ManyService
}

func NewMany(log *slog.Logger, service ManyService) *ManyHandler {
	return &ManyHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подобрать несколько рецептов
// @Tags Catalog
// @Accept  json
// @Produce  json
// @Param request body ManyRequest false "Ингредиент и число рецептов"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse "Нет рецептов с ингредиентом"
// @Failure 400 {object} response.ErrorResponse "count вне диапазона 1..20"
// @Failure 503 {object} response.ErrorResponse "Каталог недоступен"
// @Router /propose/multiple [post]
func (h *ManyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.propose.many"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req ManyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	count := defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	recipes, err := h.service.ProposeMany(r.Context(), req.Ingredient, count)
	if err != nil {
		log.Warn("no recipes proposed", slog.String("ingredient", req.Ingredient), sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("recipes proposed", slog.Int("count", len(recipes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	}))
}
