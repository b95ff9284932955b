package mealplanner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/meal-planner/internal/cache"
	"github.com/magabrotheeeer/meal-planner/internal/config"
	"github.com/magabrotheeeer/meal-planner/internal/grpc/client"
	"github.com/magabrotheeeer/meal-planner/internal/http/handlers/health"
	"github.com/magabrotheeeer/meal-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/meal-planner/internal/lib/sl"
	"github.com/magabrotheeeer/meal-planner/internal/mealdb"
	"github.com/magabrotheeeer/meal-planner/internal/metrics"
	"github.com/magabrotheeeer/meal-planner/internal/migrations"
	"github.com/magabrotheeeer/meal-planner/internal/models"
	"github.com/magabrotheeeer/meal-planner/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/meal-planner/internal/services/auth"
	"github.com/magabrotheeeer/meal-planner/internal/services/planner"
	"github.com/magabrotheeeer/meal-planner/internal/services/proposer"
	"github.com/magabrotheeeer/meal-planner/internal/services/recipes"
	"github.com/magabrotheeeer/meal-planner/internal/services/reviews"
	"github.com/magabrotheeeer/meal-planner/internal/storage/repository"
)

// Identity операции учётных записей. Реализуется сервисом в процессе
// или gRPC клиентом отдельного auth-service.
type Identity interface {
	Register(ctx context.Context, username, password, fullName string) (string, error)
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*models.Identity, error)
	DeleteUser(ctx context.Context, userUID string) error
	Profile(ctx context.Context, userUID string) (*models.User, error)
}

type publisher interface {
	planner.EventPublisher
	io.Closer
}

type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{logger: logger}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db)
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		app.close()
		return nil, err
	}
	app.closers = append(app.closers, cacheRedis)

	var identity Identity
	if cfg.GRPCAuthAddress != "" {
		authClient, err := client.NewAuthClient(cfg.GRPCAuthAddress)
		if err != nil {
			app.close()
			return nil, err
		}
		app.closers = append(app.closers, authClient)
		identity = authClient
		logger.Info("using remote auth-service", slog.String("address", cfg.GRPCAuthAddress))
	} else {
		jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.AccessTTL, cfg.RefreshTTL)
		identity = authservice.NewAuthService(db, cacheRedis, jwtMaker)
	}

	var events publisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.Dial(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitRetries, cfg.RabbitRetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		events = p
	}
	app.closers = append(app.closers, events)

	m := metrics.New()
	catalog := mealdb.NewClient(cfg.MealDBBaseURL, &http.Client{Timeout: cfg.MealDBTimeout}, m)

	choose := proposer.First
	if cfg.Randomize {
		choose = proposer.Uniform
	}
	proposerService := proposer.New(catalog, choose)

	plannerService := planner.New(logger, proposerService, catalog, db, events, m, planner.Options{
		OnSlotFailure: cfg.OnSlotFailure,
		MaxDays:       cfg.MaxDays,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Identity: identity,
		Catalog:  catalog,
		Proposer: proposerService,
		Planner:  plannerService,
		Recipes:  recipes.New(db),
		Reviews:  reviews.New(db),
		Health: map[string]health.Pinger{
			"postgres": db,
			"redis":    cacheRedis,
		},
		Metrics: m,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close освобождает ресурсы в обратном порядке открытия.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
