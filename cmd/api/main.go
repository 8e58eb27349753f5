package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/asset-maintenance/internal/api/http"
	"github.com/spec-kit/asset-maintenance/internal/api/http/handlers"
	"github.com/spec-kit/asset-maintenance/internal/auth"
	"github.com/spec-kit/asset-maintenance/internal/config"
	"github.com/spec-kit/asset-maintenance/internal/events"
	"github.com/spec-kit/asset-maintenance/internal/observability"
	"github.com/spec-kit/asset-maintenance/internal/persistence"
	"github.com/spec-kit/asset-maintenance/internal/repository"
	"github.com/spec-kit/asset-maintenance/internal/service"
	"github.com/spec-kit/asset-maintenance/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	technicianRepo := repository.NewTechnicianRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		AssetRepo:      assetRepo,
		EmployeeRepo:   employeeRepo,
		TechnicianRepo: technicianRepo,
		Dispatcher:     dispatcher,
	})
	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		TicketRepo: ticketRepo,
		Cache:      redis.ClientHandle(),
		Logger:     logger,
		CacheTTL:   cfg.Analytics.CacheTTL(),
	})

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, employeeRepo, technicianRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Technician:     handlers.NewTechnicianTicketsHandler(ticketService),
		Admin:          handlers.NewAdminTicketsHandler(ticketService),
		Dashboard:      handlers.NewDashboardHandler(analyticsService),
		Directory:      handlers.NewDirectoryHandler(departmentRepo, technicianRepo, assetRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
