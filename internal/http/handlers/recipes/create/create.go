// Package create реализует HTTP-обработчик создания пользовательского рецепта.
//
// Handler принимает JSON с описанием рецепта, валидирует поля
// и сохраняет рецепт от имени текущего пользователя.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/http/response"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Handler обрабатывает HTTP-запросы на создание рецепта.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики рецептов
	validate *validator.Validate // Валидатор входных данных
}

// Service определяет интерфейс бизнес-логики для создания рецепта.
type Service interface {
	Create(ctx context.Context, userUID string, req models.CustomRecipeRequest) (*models.CustomRecipe, error)
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
// @Summary Создать рецепт
// @Description Сохраняет пользовательский рецепт.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CustomRecipeRequest true "Данные рецепта"
// @Success 201 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /recipes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipes.create"

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

	var req models.CustomRecipeRequest
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

	recipe, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create recipe", sl.Err(err))
		response.FromError(w, r, err)
		return
	}

	log.Info("recipe created", slog.Int("recipe_id", recipe.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"recipe": recipe,
	}))
}
