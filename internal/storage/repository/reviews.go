package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// CreateReview сохраняет отзыв о рецепте внешнего каталога.
func (s *Storage) CreateReview(ctx context.Context, review *models.Review) error {
	const op = "storage.CreateReview"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO reviews (user_uid, external_id, rating, comment)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	if err := s.DB.QueryRowContext(ctx, query,
		review.UserUID, review.ExternalID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

// GetReview возвращает отзыв по ID с именем автора.
func (s *Storage) GetReview(ctx context.Context, reviewID int) (*models.Review, error) {
	const op = "storage.GetReview"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT r.id, r.user_uid, u.username, r.external_id, r.rating, r.comment, r.created_at
			  FROM reviews AS r
			  JOIN users AS u ON u.uid = r.user_uid
			  WHERE r.id = $1`
	var r models.Review
	if err := s.DB.QueryRowContext(ctx, query, reviewID).Scan(&r.ID, &r.UserUID, &r.Username,
		&r.ExternalID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &r, nil
}

// ListReviews возвращает страницу отзывов о рецепте, новые первыми, с именами авторов.
func (s *Storage) ListReviews(ctx context.Context, externalID string, limit, offset int) ([]*models.Review, error) {
	const op = "storage.ListReviews"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT r.id, r.user_uid, u.username, r.external_id, r.rating, r.comment, r.created_at
			  FROM reviews AS r
			  JOIN users AS u ON u.uid = r.user_uid
			  WHERE r.external_id = $1
			  ORDER BY r.created_at DESC, r.id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, externalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err = rows.Scan(&r.ID, &r.UserUID, &r.Username, &r.ExternalID,
			&r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteReview удаляет отзыв, если он принадлежит пользователю.
func (s *Storage) DeleteReview(ctx context.Context, userUID string, reviewID int) error {
	const op = "storage.DeleteReview"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND user_uid = $2`, reviewID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
