package mealdb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// maxIngredients число пар strIngredientN/strMeasureN в записи каталога.
const maxIngredients = 20

var errNoID = errors.New("meal record without idMeal")

func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Normalize переводит запись каталога в models.Recipe.
// Ингредиенты и меры сводятся в упорядоченный список пар, пустые ингредиенты пропускаются.
func Normalize(m map[string]any) (models.Recipe, error) {
	r := models.Recipe{
		ID:           str(m, "idMeal"),
		Name:         str(m, "strMeal"),
		Category:     str(m, "strCategory"),
		Area:         str(m, "strArea"),
		Instructions: str(m, "strInstructions"),
		Image:        str(m, "strMealThumb"),
		Tags:         str(m, "strTags"),
		Youtube:      str(m, "strYoutube"),
	}
	if r.ID == "" {
		return models.Recipe{}, fmt.Errorf("%w: %v", models.ErrUpstreamFormat, errNoID)
	}
	for i := 1; i <= maxIngredients; i++ {
		name := str(m, "strIngredient"+strconv.Itoa(i))
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, models.Ingredient{
			Name:    name,
			Measure: str(m, "strMeasure"+strconv.Itoa(i)),
		})
	}
	return r, nil
}

// HasIngredient проверяет без учёта регистра, что среди ингредиентов есть подстрока name.
// Подчёркивания в name считаются пробелами, как в фильтре каталога.
func HasIngredient(r *models.Recipe, name string) bool {
	needle := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "_", " ")))
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), needle) {
			return true
		}
	}
	return false
}
