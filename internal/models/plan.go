package models

import "time"

// MealType тип приёма пищи.
type MealType string

const (
	// Breakfast завтрак.
	Breakfast MealType = "breakfast"
	// Lunch обед.
	Lunch MealType = "lunch"
	// Dinner ужин.
	Dinner MealType = "dinner"
)

// MealTypes приёмы пищи в порядке заполнения дня.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// Valid проверяет, что значение входит в перечисление.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner:
		return true
	}
	return false
}

// MealPlan план питания на отрезок дат [StartDate, EndDate] включительно.
type MealPlan struct {
	ID        int            `json:"id"`
	UserUID   string         `json:"user_uid"`
	StartDate Date           `json:"start_date"`
	EndDate   Date           `json:"end_date"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []MealPlanItem `json:"items"`
}

// MealPlanItem один слот плана: дата и приём пищи с рецептом внешнего каталога.
type MealPlanItem struct {
	ID         int      `json:"id"`
	MealPlanID int      `json:"meal_plan_id"`
	ExternalID string   `json:"recipe_id"`
	MealDate   Date     `json:"meal_date"`
	MealType   MealType `json:"meal_type"`
	Recipe     *Recipe  `json:"recipe,omitempty"`
}

// GeneratePlanRequest тело запроса на генерацию плана.
type GeneratePlanRequest struct {
	Days       int     `json:"days" validate:"required,min=1"`
	StartDate  *Date   `json:"start_date,omitempty"`
	Ingredient *string `json:"ingredient,omitempty"`
}

// GeneratedPlan результат генерации: план и число заполненных слотов.
type GeneratedPlan struct {
	Plan           *MealPlan `json:"plan"`
	RequestedSlots int       `json:"requested_slots"`
	FilledSlots    int       `json:"filled_slots"`
}

// PlanItemInput слот в запросе на изменение плана.
type PlanItemInput struct {
	RecipeID string   `json:"recipe_id" validate:"required"`
	MealDate Date     `json:"meal_date"`
	MealType MealType `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
}

// UpdatePlanRequest полная замена дат и слотов плана.
type UpdatePlanRequest struct {
	StartDate Date            `json:"start_date"`
	EndDate   Date            `json:"end_date"`
	Items     []PlanItemInput `json:"items" validate:"dive"`
}

// UpdatePlanItemRequest частичное изменение одного слота.
type UpdatePlanItemRequest struct {
	RecipeID *string   `json:"recipe_id,omitempty" validate:"omitempty,min=1"`
	MealType *MealType `json:"meal_type,omitempty" validate:"omitempty,oneof=breakfast lunch dinner"`
}
