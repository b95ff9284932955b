package models

import "time"

// Review отзыв пользователя о рецепте внешнего каталога.
type Review struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_uid"`
	Username   string    `json:"username,omitempty"`
	ExternalID string    `json:"recipe_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewRequest тело запроса на создание отзыва.
type ReviewRequest struct {
	RecipeID string `json:"recipe_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"max=2000"`
}
