// Package planner генерирует планы питания и управляет сохранёнными планами пользователя.
//
// Генерация вызывает подбор рецепта один раз на каждый слот (день × приём пищи)
// и сохраняет план со всеми слотами одной транзакцией. Неудачный слот либо
// пропускается, либо прерывает генерацию, в зависимости от политики.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/meal-planner/internal/config"
	"github.com/magabrotheeeer/meal-planner/internal/lib/paging"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// Proposer подбирает один рецепт на слот.
type Proposer interface {
	Propose(ctx context.Context, ingredient string) (*models.Recipe, error)
}

// Catalog нужен для раскрытия рецептов слотов.
type Catalog interface {
	Lookup(ctx context.Context, id string) (*models.Recipe, error)
}

// PlanRepository хранилище планов. Все методы, кроме CreatePlan, ограничены владельцем.
type PlanRepository interface {
	CreatePlan(ctx context.Context, plan *models.MealPlan) error
	GetPlan(ctx context.Context, userUID string, planID int) (*models.MealPlan, error)
	ListPlans(ctx context.Context, userUID string, limit, offset int) ([]*models.MealPlan, error)
	ReplacePlan(ctx context.Context, plan *models.MealPlan) error
	DeletePlan(ctx context.Context, userUID string, planID int) error
	UpdatePlanItem(ctx context.Context, userUID string, planID, itemID int,
		externalID *string, mealType *models.MealType) (*models.MealPlanItem, error)
	DeletePlanItem(ctx context.Context, userUID string, planID, itemID int) error
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Recorder метрики генерации.
type Recorder interface {
	PlanGenerated(skipped int)
}

// Options настройки генерации.
type Options struct {
	OnSlotFailure string
	MaxDays       int
	Today         func() models.Date
}

// Service генератор и хранилище планов.
type Service struct {
	log       *slog.Logger
	proposer  Proposer
	catalog   Catalog
	plans     PlanRepository
	publisher EventPublisher
	recorder  Recorder
	opts      Options
}

// New создаёт Service. Пустые поля opts заменяются значениями по умолчанию.
func New(log *slog.Logger, proposer Proposer, catalog Catalog, plans PlanRepository,
	publisher EventPublisher, recorder Recorder, opts Options) *Service {
	if opts.OnSlotFailure == "" {
		opts.OnSlotFailure = config.SlotFailureSkip
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 31
	}
	if opts.Today == nil {
		opts.Today = models.Today
	}
	return &Service{
		log:       log,
		proposer:  proposer,
		catalog:   catalog,
		plans:     plans,
		publisher: publisher,
		recorder:  recorder,
		opts:      opts,
	}
}

// Generate строит план на days дней начиная со start (по умолчанию сегодня).
// Возвращает models.ErrValidation, если days вне [1, MaxDays].
func (s *Service) Generate(ctx context.Context, userUID string, req models.GeneratePlanRequest) (*models.GeneratedPlan, error) {
	const op = "services.planner.Generate"
	log := s.log.With(sl.Op(op), slog.String("user_uid", userUID))

	if req.Days < 1 || req.Days > s.opts.MaxDays {
		return nil, fmt.Errorf("%s: %w: days must be between 1 and %d", op, models.ErrValidation, s.opts.MaxDays)
	}
	start := s.opts.Today()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	ingredient := ""
	if req.Ingredient != nil {
		ingredient = *req.Ingredient
	}

	requested := req.Days * len(models.MealTypes)
	items := make([]models.MealPlanItem, 0, requested)
	for day := 0; day < req.Days; day++ {
		date := start.AddDays(day)
		for _, mealType := range models.MealTypes {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			recipe, err := s.proposer.Propose(ctx, ingredient)
			if err != nil {
				if s.opts.OnSlotFailure == config.SlotFailureAbort || errors.Is(err, context.Canceled) {
					return nil, fmt.Errorf("%s: slot %s %s: %w", op, date, mealType, err)
				}
				log.Debug("slot skipped", slog.String("date", date.String()),
					slog.String("meal_type", string(mealType)), sl.Err(err))
				continue
			}
			items = append(items, models.MealPlanItem{
				ExternalID: recipe.ID,
				MealDate:   date,
				MealType:   mealType,
			})
		}
	}

	plan := &models.MealPlan{
		UserUID:   userUID,
		StartDate: start,
		EndDate:   start.AddDays(req.Days - 1),
		Items:     items,
	}
	if err := s.plans.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	skipped := requested - len(plan.Items)
	s.recorder.PlanGenerated(skipped)
	log.Info("plan generated", slog.Int("plan_id", plan.ID),
		slog.Int("filled", len(plan.Items)), slog.Int("skipped", skipped))

	s.publish(ctx, log, models.EventPlanGenerated, models.PlanGeneratedEvent{
		PlanID:         plan.ID,
		UserUID:        userUID,
		StartDate:      plan.StartDate,
		EndDate:        plan.EndDate,
		RequestedSlots: requested,
		FilledSlots:    len(plan.Items),
	})

	return &models.GeneratedPlan{
		Plan:           plan,
		RequestedSlots: requested,
		FilledSlots:    len(plan.Items),
	}, nil
}

// Read возвращает план пользователя со слотами.
func (s *Service) Read(ctx context.Context, userUID string, planID int) (*models.MealPlan, error) {
	const op = "services.planner.Read"
	plan, err := s.plans.GetPlan(ctx, userUID, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

// List возвращает страницу планов пользователя.
func (s *Service) List(ctx context.Context, userUID string, limit, offset int) ([]*models.MealPlan, error) {
	const op = "services.planner.List"
	limit, offset, err := paging.Normalize(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plans, err := s.plans.ListPlans(ctx, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// Update заменяет даты и все слоты плана.
func (s *Service) Update(ctx context.Context, userUID string, planID int, req models.UpdatePlanRequest) (*models.MealPlan, error) {
	const op = "services.planner.Update"
	if err := validateUpdate(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.MealPlanItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, models.MealPlanItem{
			ExternalID: in.RecipeID,
			MealDate:   in.MealDate,
			MealType:   in.MealType,
		})
	}
	plan := &models.MealPlan{
		ID:        planID,
		UserUID:   userUID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Items:     items,
	}
	if err := s.plans.ReplacePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

func validateUpdate(req models.UpdatePlanRequest) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", models.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end_date is before start_date", models.ErrValidation)
	}
	type slot struct {
		date     string
		mealType models.MealType
	}
	seen := make(map[slot]struct{}, len(req.Items))
	for _, it := range req.Items {
		if !it.MealType.Valid() {
			return fmt.Errorf("%w: unknown meal type %q", models.ErrValidation, it.MealType)
		}
		if it.RecipeID == "" {
			return fmt.Errorf("%w: recipe_id is required", models.ErrValidation)
		}
		if !it.MealDate.Between(req.StartDate, req.EndDate) {
			return fmt.Errorf("%w: item date %s is outside the plan", models.ErrValidation, it.MealDate)
		}
		key := slot{date: it.MealDate.String(), mealType: it.MealType}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate slot %s %s", models.ErrValidation, key.date, key.mealType)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Remove удаляет план вместе со слотами.
func (s *Service) Remove(ctx context.Context, userUID string, planID int) error {
	const op = "services.planner.Remove"
	if err := s.plans.DeletePlan(ctx, userUID, planID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.publish(ctx, s.log.With(sl.Op(op)), models.EventPlanDeleted, models.PlanDeletedEvent{
		PlanID:  planID,
		UserUID: userUID,
	})
	return nil
}

// UpdateItem меняет рецепт и/или приём пищи одного слота.
func (s *Service) UpdateItem(ctx context.Context, userUID string, planID, itemID int,
	req models.UpdatePlanItemRequest) (*models.MealPlanItem, error) {
	const op = "services.planner.UpdateItem"
	if req.RecipeID == nil && req.MealType == nil {
		return nil, fmt.Errorf("%s: %w: nothing to update", op, models.ErrValidation)
	}
	if req.MealType != nil && !req.MealType.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown meal type %q", op, models.ErrValidation, *req.MealType)
	}
	if req.RecipeID != nil && *req.RecipeID == "" {
		return nil, fmt.Errorf("%s: %w: recipe_id is empty", op, models.ErrValidation)
	}
	item, err := s.plans.UpdatePlanItem(ctx, userUID, planID, itemID, req.RecipeID, req.MealType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// RemoveItem удаляет один слот плана.
func (s *Service) RemoveItem(ctx context.Context, userUID string, planID, itemID int) error {
	const op = "services.planner.RemoveItem"
	if err := s.plans.DeletePlanItem(ctx, userUID, planID, itemID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Details возвращает план, в котором у каждого слота раскрыт рецепт каталога.
// Слоты, рецепт которых получить не удалось, возвращаются без рецепта.
func (s *Service) Details(ctx context.Context, userUID string, planID int) (*models.MealPlan, error) {
	const op = "services.planner.Details"
	log := s.log.With(sl.Op(op), slog.Int("plan_id", planID))

	plan, err := s.plans.GetPlan(ctx, userUID, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range plan.Items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		recipe, err := s.catalog.Lookup(ctx, plan.Items[i].ExternalID)
		if err != nil {
			log.Warn("recipe not resolved", slog.String("recipe_id", plan.Items[i].ExternalID), sl.Err(err))
			continue
		}
		plan.Items[i].Recipe = recipe
	}
	return plan, nil
}

func (s *Service) publish(ctx context.Context, log *slog.Logger, routingKey string, event any) {
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Error("failed to publish event", slog.String("event", routingKey), sl.Err(err))
	}
}
