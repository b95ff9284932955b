package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

func insertIngredients(ctx context.Context, tx *sql.Tx, recipeID int, ingredients []models.Ingredient) error {
	query := `INSERT INTO custom_recipe_ingredients (recipe_id, position, ingredient_name, measure)
			  VALUES ($1, $2, $3, $4)`
	for i, ing := range ingredients {
		if _, err := tx.ExecContext(ctx, query, recipeID, i, ing.Name, ing.Measure); err != nil {
			return err
		}
	}
	return nil
}

// CreateRecipe сохраняет рецепт вместе с ингредиентами в исходном порядке.
func (s *Storage) CreateRecipe(ctx context.Context, recipe *models.CustomRecipe) error {
	const op = "storage.CreateRecipe"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO custom_recipes (user_uid, name, category, area, instructions, image, tags)
				  VALUES ($1, $2, $3, $4, $5, $6, $7)
				  RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, query,
			recipe.UserUID, recipe.Name, recipe.Category, recipe.Area, recipe.Instructions,
			recipe.Image, recipe.Tags).Scan(&recipe.ID, &recipe.CreatedAt); err != nil {
			return err
		}
		return insertIngredients(ctx, tx, recipe.ID, recipe.Ingredients)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

func scanRecipe(row interface{ Scan(dest ...any) error }) (*models.CustomRecipe, error) {
	var r models.CustomRecipe
	var image, tags sql.NullString
	if err := row.Scan(&r.ID, &r.UserUID, &r.Name, &r.Category, &r.Area,
		&r.Instructions, &image, &tags, &r.CreatedAt); err != nil {
		return nil, err
	}
	if image.Valid {
		r.Image = &image.String
	}
	if tags.Valid {
		r.Tags = &tags.String
	}
	r.Ingredients = make([]models.Ingredient, 0)
	return &r, nil
}

// GetRecipe возвращает рецепт пользователя с ингредиентами.
func (s *Storage) GetRecipe(ctx context.Context, userUID string, recipeID int) (*models.CustomRecipe, error) {
	const op = "storage.GetRecipe"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, user_uid, name, category, area, instructions, image, tags, created_at
			  FROM custom_recipes
			  WHERE id = $1 AND user_uid = $2`
	r, err := scanRecipe(s.DB.QueryRowContext(ctx, query, recipeID, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT ingredient_name, measure
			  FROM custom_recipe_ingredients
			  WHERE recipe_id = $1
			  ORDER BY position`, r.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var ing models.Ingredient
		if err = rows.Scan(&ing.Name, &ing.Measure); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListRecipes возвращает страницу рецептов пользователя вместе с ингредиентами.
func (s *Storage) ListRecipes(ctx context.Context, userUID string, limit, offset int) ([]*models.CustomRecipe, error) {
	const op = "storage.ListRecipes"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, user_uid, name, category, area, instructions, image, tags, created_at
			  FROM custom_recipes
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.CustomRecipe, 0)
	byID := make(map[int]*models.CustomRecipe)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
		byID[r.ID] = r
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(result) == 0 {
		return result, nil
	}

	ingQuery := `SELECT i.recipe_id, i.ingredient_name, i.measure
				 FROM custom_recipe_ingredients AS i
				 WHERE i.recipe_id IN (
				     SELECT id FROM custom_recipes
				     WHERE user_uid = $1
				     ORDER BY created_at DESC, id DESC
				     LIMIT $2 OFFSET $3)
				 ORDER BY i.recipe_id, i.position`
	ingRows, err := s.DB.QueryContext(ctx, ingQuery, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = ingRows.Close()
	}()
	for ingRows.Next() {
		var recipeID int
		var ing models.Ingredient
		if err = ingRows.Scan(&recipeID, &ing.Name, &ing.Measure); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if r, ok := byID[recipeID]; ok {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	if err = ingRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRecipe заменяет поля рецепта и весь список ингредиентов одной транзакцией.
func (s *Storage) UpdateRecipe(ctx context.Context, recipe *models.CustomRecipe) error {
	const op = "storage.UpdateRecipe"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `UPDATE custom_recipes
				  SET name = $1, category = $2, area = $3, instructions = $4, image = $5, tags = $6
				  WHERE id = $7 AND user_uid = $8
				  RETURNING created_at`
		if err := tx.QueryRowContext(ctx, query,
			recipe.Name, recipe.Category, recipe.Area, recipe.Instructions, recipe.Image, recipe.Tags,
			recipe.ID, recipe.UserUID).Scan(&recipe.CreatedAt); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM custom_recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return err
		}
		return insertIngredients(ctx, tx, recipe.ID, recipe.Ingredients)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

// DeleteRecipe удаляет рецепт пользователя, ингредиенты удаляются каскадно.
func (s *Storage) DeleteRecipe(ctx context.Context, userUID string, recipeID int) error {
	const op = "storage.DeleteRecipe"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM custom_recipes WHERE id = $1 AND user_uid = $2`, recipeID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
