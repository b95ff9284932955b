// Package reviews отзывы пользователей о рецептах внешнего каталога.
package reviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/meal-planner/internal/lib/paging"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Repository хранилище отзывов.
type Repository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, reviewID int) (*models.Review, error)
	ListReviews(ctx context.Context, externalID string, limit, offset int) ([]*models.Review, error)
	DeleteReview(ctx context.Context, userUID string, reviewID int) error
}

// Service отзывы.
type Service struct {
	repo Repository
}

// New создаёт Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create оставляет отзыв с оценкой от 1 до 5.
func (s *Service) Create(ctx context.Context, userUID string, req models.ReviewRequest) (*models.Review, error) {
	const op = "services.reviews.Create"
	externalID := strings.TrimSpace(req.RecipeID)
	if externalID == "" {
		return nil, fmt.Errorf("%s: %w: recipe_id is required", op, models.ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%s: %w: rating must be between 1 and 5", op, models.ErrValidation)
	}
	review := &models.Review{
		UserUID:    userUID,
		ExternalID: externalID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return review, nil
}

// Get возвращает отзыв по ID. Отзывы публичны, владелец не проверяется.
func (s *Service) Get(ctx context.Context, reviewID int) (*models.Review, error) {
	const op = "services.reviews.Get"
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return review, nil
}

// ListForRecipe страница отзывов о рецепте, новые первыми.
func (s *Service) ListForRecipe(ctx context.Context, externalID string, limit, offset int) ([]*models.Review, error) {
	const op = "services.reviews.ListForRecipe"
	limit, offset, err := paging.Normalize(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := s.repo.ListReviews(ctx, strings.TrimSpace(externalID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Remove удаляет отзыв. Чужой отзыв даёт models.ErrNotFound.
func (s *Service) Remove(ctx context.Context, userUID string, reviewID int) error {
	const op = "services.reviews.Remove"
	if err := s.repo.DeleteReview(ctx, userUID, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
