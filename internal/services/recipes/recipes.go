// Package recipes управляет пользовательскими рецептами.
package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/meal-planner/internal/lib/paging"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Repository хранилище пользовательских рецептов, все операции ограничены владельцем.
type Repository interface {
	CreateRecipe(ctx context.Context, recipe *models.CustomRecipe) error
	GetRecipe(ctx context.Context, userUID string, recipeID int) (*models.CustomRecipe, error)
	ListRecipes(ctx context.Context, userUID string, limit, offset int) ([]*models.CustomRecipe, error)
	UpdateRecipe(ctx context.Context, recipe *models.CustomRecipe) error
	DeleteRecipe(ctx context.Context, userUID string, recipeID int) error
}

// Service CRUD пользовательских рецептов.
type Service struct {
	repo Repository
}

// New создаёт Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func fromRequest(userUID string, req models.CustomRecipeRequest) (*models.CustomRecipe, error) {
	recipe := &models.CustomRecipe{
		UserUID:      userUID,
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
		Area:         strings.TrimSpace(req.Area),
		Instructions: strings.TrimSpace(req.Instructions),
		Image:        req.Image,
		Tags:         req.Tags,
		Ingredients:  make([]models.Ingredient, 0, len(req.Ingredients)),
	}
	if recipe.Name == "" || recipe.Instructions == "" {
		return nil, fmt.Errorf("%w: name and instructions are required", models.ErrValidation)
	}
	for _, ing := range req.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: ingredient name is required", models.ErrValidation)
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(ing.Measure),
		})
	}
	return recipe, nil
}

// Create сохраняет новый рецепт. Порядок ингредиентов сохраняется.
func (s *Service) Create(ctx context.Context, userUID string, req models.CustomRecipeRequest) (*models.CustomRecipe, error) {
	const op = "services.recipes.Create"
	recipe, err := fromRequest(userUID, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recipe, nil
}

// Read возвращает рецепт пользователя.
func (s *Service) Read(ctx context.Context, userUID string, recipeID int) (*models.CustomRecipe, error) {
	const op = "services.recipes.Read"
	recipe, err := s.repo.GetRecipe(ctx, userUID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recipe, nil
}

// List возвращает страницу рецептов пользователя.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.CustomRecipe, error) {
	const op = "services.recipes.List"
	limit, offset, err := paging.Normalize(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListRecipes(ctx, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Update полностью заменяет поля и ингредиенты рецепта.
func (s *Service) Update(ctx context.Context, userUID string, recipeID int, req models.CustomRecipeRequest) (*models.CustomRecipe, error) {
	const op = "services.recipes.Update"
	recipe, err := fromRequest(userUID, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recipe.ID = recipeID
	if err := s.repo.UpdateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recipe, nil
}

// Remove удаляет рецепт вместе с ингредиентами.
func (s *Service) Remove(ctx context.Context, userUID string, recipeID int) error {
	const op = "services.recipes.Remove"
	if err := s.repo.DeleteRecipe(ctx, userUID, recipeID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
