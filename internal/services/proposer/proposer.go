// Package proposer подбирает рецепты внешнего каталога: по ингредиенту или случайные.
package proposer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/magabrotheeeer/meal-planner/internal/mealdb"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Catalog операции каталога, нужные для подбора рецепта.
type Catalog interface {
	Search(ctx context.Context, criterion mealdb.Criterion, value string) ([]models.Recipe, error)
	Random(ctx context.Context) (*models.Recipe, error)
	Lookup(ctx context.Context, id string) (*models.Recipe, error)
}

// MaxCount наибольшее число рецептов в одном подборе.
const MaxCount = 20

// Chooser выбирает индекс кандидата из n > 0.
type Chooser func(n int) int

// First всегда выбирает первого кандидата.
func First(int) int { return 0 }

// Uniform выбирает кандидата равновероятно.
func Uniform(n int) int { return rand.IntN(n) }

// Service подбор рецептов.
type Service struct {
	catalog Catalog
	choose  Chooser
}

// New создаёт Service. Nil chooser означает First.
func New(catalog Catalog, choose Chooser) *Service {
	if choose == nil {
		choose = First
	}
	return &Service{catalog: catalog, choose: choose}
}

// Propose возвращает полный рецепт. С непустым ingredient ищет по ингредиенту,
// иначе берёт случайный рецепт. Пустой результат даёт models.ErrNotFound.
func (s *Service) Propose(ctx context.Context, ingredient string) (*models.Recipe, error) {
	const op = "services.proposer.Propose"

	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		recipe, err := s.catalog.Random(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return recipe, nil
	}

	candidates, err := s.catalog.Search(ctx, mealdb.ByIngredient, ingredient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: %w: no recipes with %q", op, models.ErrNotFound, ingredient)
	}
	picked := candidates[s.choose(len(candidates))]
	recipe, err := s.catalog.Lookup(ctx, picked.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recipe, nil
}

func checkCount(op string, count int) error {
	if count < 1 || count > MaxCount {
		return fmt.Errorf("%s: %w: count must be between 1 and %d", op, models.ErrValidation, MaxCount)
	}
	return nil
}

// RandomMany возвращает count случайных рецептов, по одному запросу к каталогу на рецепт.
// Каталог может вернуть один и тот же рецепт несколько раз.
func (s *Service) RandomMany(ctx context.Context, count int) ([]models.Recipe, error) {
	const op = "services.proposer.RandomMany"
	if err := checkCount(op, count); err != nil {
		return nil, err
	}
	out := make([]models.Recipe, 0, count)
	for range count {
		recipe, err := s.catalog.Random(ctx)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *recipe)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return out, nil
}

// ProposeMany подбирает до count разных полных рецептов с ingredient, без него
// count случайных. Кандидаты перебираются в порядке chooser, рецепты без
// ингредиента в составе пропускаются.
func (s *Service) ProposeMany(ctx context.Context, ingredient string, count int) ([]models.Recipe, error) {
	const op = "services.proposer.ProposeMany"
	if err := checkCount(op, count); err != nil {
		return nil, err
	}

	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return s.RandomMany(ctx, count)
	}

	candidates, err := s.catalog.Search(ctx, mealdb.ByIngredient, ingredient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Recipe, 0, count)
	for len(candidates) > 0 && len(out) < count {
		i := s.choose(len(candidates))
		picked := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		recipe, err := s.catalog.Lookup(ctx, picked.ID)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !mealdb.HasIngredient(recipe, ingredient) {
			continue
		}
		out = append(out, *recipe)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w: no recipes with %q", op, models.ErrNotFound, ingredient)
	}
	return out, nil
}
