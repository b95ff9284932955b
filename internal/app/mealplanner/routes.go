// Package mealplanner собирает HTTP приложение планировщика питания.
package mealplanner

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/auth/deleteaccount"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/catalog/lists"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/catalog/lookup"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/catalog/propose"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/catalog/random"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/catalog/search"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/health"
	plancreate "github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/create"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/details"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/itemremove"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/itemupdate"
	planlist "github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/list"
	planread "github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/remove"
	planupdate "github.com/magabrotheeeer/meal-planner/internal/http/handlers/plan/update"
	recipecreate "github.com/magabrotheeeer/meal-planner/internal/http/handlers/recipes/create"
	recipelist "github.com/magabrotheeeer/meal-planner/internal/http/handlers/recipes/list"
	reciperead "github.com/magabrotheeeer/meal-planner/internal/http/handlers/recipes/read"
	reciperemove "github.com/magabrotheeeer/meal-planner/internal/http/handlers/recipes/remove"
	recipeupdate "github.com/magabrotheeeer/meal-planner/internal/http/handlers/recipes/update"
	reviewcreate "github.com/magabrotheeeer/meal-planner/internal/http/handlers/reviews/create"
	reviewlist "github.com/magabrotheeeer/meal-planner/internal/http/handlers/reviews/list"
	reviewread "github.com/magabrotheeeer/meal-planner/internal/http/handlers/reviews/read"
	reviewremove "github.com/magabrotheeeer/meal-planner/internal/http/handlers/reviews/remove"
	"github.com/magabrotheeeer/meal-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/meal-planner/internal/mealdb"
	"github.com/magabrotheeeer/meal-planner/internal/metrics"
	"github.com/magabrotheeeer/meal-planner/internal/services/planner"
	"github.com/magabrotheeeer/meal-planner/internal/services/proposer"
	"github.com/magabrotheeeer/meal-planner/internal/services/recipes"
	"github.com/magabrotheeeer/meal-planner/internal/services/reviews"
)

// Services зависимости, которые обслуживают маршруты.
type Services struct {
	Identity Identity
	Catalog  *mealdb.Client
	Proposer *proposer.Service
	Planner  *planner.Service
	Recipes  *recipes.Service
	Reviews  *reviews.Service
	Health   map[string]health.Pinger
	Metrics  *metrics.Metrics
	Limiter  *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(s.Metrics),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Identity).ServeHTTP)
		r.Post("/login", login.New(logger, s.Identity).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, s.Identity).ServeHTTP)
		r.Get("/health", health.New(logger, s.Health).ServeHTTP)

		// Каталог: каждый запрос уходит во внешний сервис
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, s.Limiter))
			r.Get("/search/{criterion}/{term}", search.New(logger, s.Catalog).ServeHTTP)
			r.Get("/random", random.New(logger, s.Catalog).ServeHTTP)
			r.Get("/random/{count}", random.NewMany(logger, s.Proposer).ServeHTTP)
			r.Get("/catalog/{id}", lookup.New(logger, s.Catalog).ServeHTTP)
			r.Get("/categories", lists.NewCategories(logger, s.Catalog).ServeHTTP)
			r.Get("/areas", lists.NewAreas(logger, s.Catalog).ServeHTTP)
			r.Get("/ingredients", lists.NewIngredients(logger, s.Catalog).ServeHTTP)
			r.Post("/propose", propose.New(logger, s.Proposer).ServeHTTP)
			r.Post("/propose/multiple", propose.NewMany(logger, s.Proposer).ServeHTTP)
		})
		r.Get("/reviews/recipe/{externalID}", reviewlist.New(logger, s.Reviews).ServeHTTP)
		r.Get("/reviews/{id}", reviewread.New(logger, s.Reviews).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Identity, logger))
			r.Post("/logout", logout.New(logger, s.Identity).ServeHTTP)
			r.Get("/me", profile.New(logger, s.Identity).ServeHTTP)
			r.Delete("/me", deleteaccount.New(logger, s.Identity).ServeHTTP)

			r.Get("/plans", planlist.New(logger, s.Planner).ServeHTTP)
			r.Get("/plans/{id}", planread.New(logger, s.Planner).ServeHTTP)
			r.Put("/plans/{id}", planupdate.New(logger, s.Planner).ServeHTTP)
			r.Delete("/plans/{id}", planremove.New(logger, s.Planner).ServeHTTP)
			r.Put("/plans/{id}/items/{itemID}", itemupdate.New(logger, s.Planner).ServeHTTP)
			r.Delete("/plans/{id}/items/{itemID}", itemremove.New(logger, s.Planner).ServeHTTP)

			r.Post("/recipes", recipecreate.New(logger, s.Recipes).ServeHTTP)
			r.Get("/recipes", recipelist.New(logger, s.Recipes).ServeHTTP)
			r.Get("/recipes/{id}", reciperead.New(logger, s.Recipes).ServeHTTP)
			r.Put("/recipes/{id}", recipeupdate.New(logger, s.Recipes).ServeHTTP)
			r.Delete("/recipes/{id}", reciperemove.New(logger, s.Recipes).ServeHTTP)

			r.Post("/reviews", reviewcreate.New(logger, s.Reviews).ServeHTTP)
			r.Delete("/reviews/{id}", reviewremove.New(logger, s.Reviews).ServeHTTP)

			// Генерация и детали плана ходят в каталог
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(logger, s.Limiter))
				r.Post("/plans", plancreate.New(logger, s.Planner).ServeHTTP)
				r.Get("/plans/{id}/details", details.New(logger, s.Planner).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", s.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
