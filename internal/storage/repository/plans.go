package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertItems(ctx context.Context, q execer, planID int, items []models.MealPlanItem) ([]models.MealPlanItem, error) {
	query := `INSERT INTO meal_plan_items (meal_plan_id, external_id, meal_date, meal_type)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	out := make([]models.MealPlanItem, 0, len(items))
	for _, it := range items {
		it.MealPlanID = planID
		if err := q.QueryRowContext(ctx, query, planID, it.ExternalID, it.MealDate, string(it.MealType)).Scan(&it.ID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// CreatePlan сохраняет план и все его слоты одной транзакцией.
// При ошибке на любом слоте в базе не остаётся ни плана, ни слотов.
func (s *Storage) CreatePlan(ctx context.Context, plan *models.MealPlan) error {
	const op = "storage.CreatePlan"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO meal_plans (user_uid, start_date, end_date)
				  VALUES ($1, $2, $3)
				  RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, query, plan.UserUID, plan.StartDate, plan.EndDate).
			Scan(&plan.ID, &plan.CreatedAt); err != nil {
			return err
		}
		items, err := insertItems(ctx, tx, plan.ID, plan.Items)
		if err != nil {
			return err
		}
		plan.Items = items
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

func (s *Storage) planItems(ctx context.Context, planID int) ([]models.MealPlanItem, error) {
	query := `SELECT id, meal_plan_id, external_id, meal_date, meal_type
			  FROM meal_plan_items
			  WHERE meal_plan_id = $1
			  ORDER BY meal_date,
			      CASE meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 ELSE 3 END`
	rows, err := s.DB.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]models.MealPlanItem, 0)
	for rows.Next() {
		var it models.MealPlanItem
		var mealType string
		if err = rows.Scan(&it.ID, &it.MealPlanID, &it.ExternalID, &it.MealDate, &mealType); err != nil {
			return nil, err
		}
		it.MealType = models.MealType(mealType)
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetPlan возвращает план пользователя со всеми слотами.
func (s *Storage) GetPlan(ctx context.Context, userUID string, planID int) (*models.MealPlan, error) {
	const op = "storage.GetPlan"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, user_uid, start_date, end_date, created_at
			  FROM meal_plans
			  WHERE id = $1 AND user_uid = $2`
	var p models.MealPlan
	if err := s.DB.QueryRowContext(ctx, query, planID, userUID).Scan(
		&p.ID, &p.UserUID, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	items, err := s.planItems(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.Items = items
	return &p, nil
}

// ListPlans возвращает планы пользователя без слотов, новые первыми.
func (s *Storage) ListPlans(ctx context.Context, userUID string, limit, offset int) ([]*models.MealPlan, error) {
	const op = "storage.ListPlans"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, user_uid, start_date, end_date, created_at
			  FROM meal_plans
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

	result := make([]*models.MealPlan, 0)
	for rows.Next() {
		var p models.MealPlan
		if err = rows.Scan(&p.ID, &p.UserUID, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplacePlan заменяет даты и полный список слотов плана одной транзакцией.
func (s *Storage) ReplacePlan(ctx context.Context, plan *models.MealPlan) error {
	const op = "storage.ReplacePlan"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `UPDATE meal_plans
				  SET start_date = $1, end_date = $2
				  WHERE id = $3 AND user_uid = $4
				  RETURNING created_at`
		if err := tx.QueryRowContext(ctx, query, plan.StartDate, plan.EndDate, plan.ID, plan.UserUID).
			Scan(&plan.CreatedAt); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM meal_plan_items WHERE meal_plan_id = $1`, plan.ID); err != nil {
			return err
		}
		items, err := insertItems(ctx, tx, plan.ID, plan.Items)
		if err != nil {
			return err
		}
		plan.Items = items
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return nil
}

// DeletePlan удаляет план пользователя, слоты удаляются каскадно.
func (s *Storage) DeletePlan(ctx context.Context, userUID string, planID int) error {
	const op = "storage.DeletePlan"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = $1 AND user_uid = $2`, planID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePlanItem меняет рецепт и/или приём пищи одного слота.
// Nil поля остаются без изменений. Занятый слот даёт models.ErrValidation.
func (s *Storage) UpdatePlanItem(ctx context.Context, userUID string, planID, itemID int,
	externalID *string, mealType *models.MealType) (*models.MealPlanItem, error) {
	const op = "storage.UpdatePlanItem"
	if err := ctxDone(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var mt *string
	if mealType != nil {
		v := string(*mealType)
		mt = &v
	}
	query := `UPDATE meal_plan_items AS i
			  SET external_id = COALESCE($1, i.external_id),
			      meal_type = COALESCE($2, i.meal_type)
			  FROM meal_plans AS p
			  WHERE i.id = $3 AND i.meal_plan_id = $4
			      AND p.id = i.meal_plan_id AND p.user_uid = $5
			  RETURNING i.id, i.meal_plan_id, i.external_id, i.meal_date, i.meal_type`
	var it models.MealPlanItem
	var typ string
	if err := s.DB.QueryRowContext(ctx, query, externalID, mt, itemID, planID, userUID).Scan(
		&it.ID, &it.MealPlanID, &it.ExternalID, &it.MealDate, &typ); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	it.MealType = models.MealType(typ)
	return &it, nil
}

// DeletePlanItem удаляет один слот плана пользователя.
func (s *Storage) DeletePlanItem(ctx context.Context, userUID string, planID, itemID int) error {
	const op = "storage.DeletePlanItem"
	if err := ctxDone(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM meal_plan_items AS i
			  USING meal_plans AS p
			  WHERE i.id = $1 AND i.meal_plan_id = $2
			      AND p.id = i.meal_plan_id AND p.user_uid = $3`
	res, err := s.DB.ExecContext(ctx, query, itemID, planID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err = affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
