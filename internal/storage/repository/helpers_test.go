package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/meal-planner/internal/migrations"
	"github.com/magabrotheeeer/meal-planner/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("meal_planner"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(root, "migrations")))

	return storage
}

// TestDataFactory создаёт тестовые данные напрямую через хранилище.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает пользователя со случайным именем и возвращает его UID.
func (f *TestDataFactory) CreateUser(t *testing.T) string {
	uid, err := f.storage.RegisterUser(context.Background(), models.User{
		Username:     "user_" + uuid.NewString()[:8],
		PasswordHash: "hash",
		FullName:     "Test User",
	})
	require.NoError(t, err)
	return uid
}

// CreatePlan создает план на days дней с полным набором слотов.
func (f *TestDataFactory) CreatePlan(t *testing.T, userUID string, start models.Date, days int) *models.MealPlan {
	plan := &models.MealPlan{
		UserUID:   userUID,
		StartDate: start,
		EndDate:   start.AddDays(days - 1),
	}
	for d := 0; d < days; d++ {
		for _, mt := range models.MealTypes {
			plan.Items = append(plan.Items, models.MealPlanItem{
				ExternalID: "5277" + string(rune('0'+d)),
				MealDate:   start.AddDays(d),
				MealType:   mt,
			})
		}
	}
	require.NoError(t, f.storage.CreatePlan(context.Background(), plan))
	return plan
}

// CreateRecipe создает рецепт с тремя ингредиентами.
func (f *TestDataFactory) CreateRecipe(t *testing.T, userUID string) *models.CustomRecipe {
	recipe := &models.CustomRecipe{
		UserUID:      userUID,
		Name:         "Borscht",
		Category:     "Soup",
		Area:         "Ukrainian",
		Instructions: "Boil everything.",
		Ingredients: []models.Ingredient{
			{Name: "Beetroot", Measure: "2"},
			{Name: "Cabbage", Measure: "1/2 head"},
			{Name: "Sour cream", Measure: "to serve"},
		},
	}
	require.NoError(t, f.storage.CreateRecipe(context.Background(), recipe))
	return recipe
}

func mustDate(t *testing.T, s string) models.Date {
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}
