package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rentcar-service/internal/api/http"
	"github.com/spec-kit/rentcar-service/internal/api/http/handlers"
	"github.com/spec-kit/rentcar-service/internal/auth"
	"github.com/spec-kit/rentcar-service/internal/config"
	"github.com/spec-kit/rentcar-service/internal/events"
	"github.com/spec-kit/rentcar-service/internal/observability"
	"github.com/spec-kit/rentcar-service/internal/persistence"
	"github.com/spec-kit/rentcar-service/internal/presence"
	"github.com/spec-kit/rentcar-service/internal/repository"
	"github.com/spec-kit/rentcar-service/internal/repository/memory"
	mongorepo "github.com/spec-kit/rentcar-service/internal/repository/mongo"
	pgrepo "github.com/spec-kit/rentcar-service/internal/repository/postgres"
	"github.com/spec-kit/rentcar-service/internal/service"
)

const (
	shutdownTimeout         = 10 * time.Second
	bootstrapRetryWait      = time.Second
	bootstrapRetryMaxWait   = 30 * time.Second
	bootstrapAttemptTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	healthDeps := st.health
	if redis != nil {
		healthDeps = append(healthDeps, handlers.Dependency{Name: "redis", Pinger: redis, Optional: true})
	}
	if st.bootstrap != nil {
		go st.bootstrap.Retry(ctx, bootstrapRetryWait, bootstrapRetryMaxWait, bootstrapAttemptTimeout)
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	tracker := presence.NewTracker(st.repos.Users, cfg.Presence.Window())
	throttle := auth.NewLoginThrottle(redis.Handle(), cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow(), logger)

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   st.repos.Users,
		Presence:   tracker,
		Throttle:   throttle,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	userService := service.NewUserService(st.repos.Users, tracker, nil)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  st.repos.Orders,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	contactService := service.NewContactService(st.repos.Messages, dispatcher, logger, nil)
	statsService := service.NewStatsService(st.repos, tracker, nil)

	metrics := observability.NewMetrics("rentcar")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.AllowedOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
		Users:   handlers.NewUsersHandler(authService, userService),
		Orders:  handlers.NewOrdersHandler(orderService),
		Contact: handlers.NewContactHandler(contactService),
		Stats:   handlers.NewStatsHandler(statsService),
		Metrics: metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer closeCancel()
	st.close(closeCtx)
}

// store is the selected backend plus what main needs to probe and close it.
type store struct {
	repos     repository.Repositories
	health    []handlers.Dependency
	bootstrap *persistence.Bootstrap
	close     func(context.Context)
}

// openStore connects the backend chosen by STORE_DRIVER. An unreachable
// database is logged and the service starts anyway; schema setup is retried
// until it succeeds and writes wait for it. Bad connection settings are
// returned as errors.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return &store{
			repos: memory.New(),
			close: func(context.Context) {},
		}, nil

	case config.StorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		st := &store{
			repos:  pgrepo.New(pg.PoolHandle()),
			health: []handlers.Dependency{{Name: "postgres", Pinger: pg}},
			close:  func(context.Context) { pg.Close() },
		}
		if cfg.Postgres.RunMigrations {
			st.bootstrap = persistence.NewBootstrap("postgres", func(ctx context.Context) error {
				return persistence.RunMigrations(ctx, pg.PoolHandle(), logger)
			}, logger)
		}
		return st.withBootstrap(), nil

	case config.StoreMongo:
		mg, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		st := &store{
			repos:  mongorepo.New(mg.DB),
			health: []handlers.Dependency{{Name: "mongo", Pinger: mg}},
			close:  mg.Close,
		}
		st.bootstrap = persistence.NewBootstrap("mongo", func(ctx context.Context) error {
			return mongorepo.EnsureIndexes(ctx, mg.DB)
		}, logger)
		return st.withBootstrap(), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

// withBootstrap gates writes on schema setup and reports it in readiness.
func (s *store) withBootstrap() *store {
	if s.bootstrap == nil {
		return s
	}
	s.repos = repository.WithEnsure(s.repos, s.bootstrap.Ensure)
	s.health = append(s.health, handlers.Dependency{Name: "schema", Pinger: s.bootstrap})
	return s
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
