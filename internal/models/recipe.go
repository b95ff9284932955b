package models

import "time"

// Ingredient ингредиент рецепта вместе с мерой.
type Ingredient struct {
	Name    string `json:"ingredient" validate:"required"`
	Measure string `json:"measure"`
}

// Recipe рецепт внешнего каталога. Не сохраняется и не кэшируется.
// Результаты поиска по фильтрам содержат только ID, Name и Image.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category,omitempty"`
	Area         string       `json:"area,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
	Image        string       `json:"image,omitempty"`
	Tags         string       `json:"tags,omitempty"`
	Youtube      string       `json:"youtube,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
}

// CustomRecipe пользовательский рецепт.
type CustomRecipe struct {
	ID           int          `json:"id"`
	UserUID      string       `json:"user_uid"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Instructions string       `json:"instructions"`
	Image        *string      `json:"image,omitempty"`
	Tags         *string      `json:"tags,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CustomRecipeRequest тело запроса на создание или изменение пользовательского рецепта.
type CustomRecipeRequest struct {
	Name         string       `json:"name" validate:"required,max=255"`
	Category     string       `json:"category" validate:"required,max=100"`
	Area         string       `json:"area" validate:"required,max=100"`
	Instructions string       `json:"instructions" validate:"required"`
	Image        *string      `json:"image,omitempty" validate:"omitempty,url"`
	Tags         *string      `json:"tags,omitempty"`
	Ingredients  []Ingredient `json:"ingredients" validate:"dive"`
}
