package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/orgkit/employee-service/internal/api/http"
	"github.com/orgkit/employee-service/internal/api/http/handlers"
	"github.com/orgkit/employee-service/internal/cache"
	"github.com/orgkit/employee-service/internal/config"
	"github.com/orgkit/employee-service/internal/events"
	"github.com/orgkit/employee-service/internal/observability"
	"github.com/orgkit/employee-service/internal/persistence"
	"github.com/orgkit/employee-service/internal/repository"
	"github.com/orgkit/employee-service/internal/service"
	"github.com/orgkit/employee-service/internal/worker"
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	departmentRepo, employeeRepo := buildRepositories(pg)

	var departmentCache cache.DepartmentCache
	if redis.Enabled() {
		departmentCache = cache.NewRedisDepartmentCache(redis.Client, cfg.Redis.DepartmentsTTL())
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	departmentService := service.NewDepartmentService(service.DepartmentDependencies{
		DepartmentRepo: departmentRepo,
		Cache:          departmentCache,
		Logger:         logger,
	})
	if cfg.Seed.DefaultDepartments {
		if err := departmentService.SeedDefaults(ctx); err != nil {
			logger.Fatal("failed to seed departments", zap.Error(err))
		}
	}

	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   employeeRepo,
		DepartmentRepo: departmentRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Departments: handlers.NewDepartmentsHandler(departmentService),
		Employees:   handlers.NewEmployeesHandler(employeeService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	shutdown(app, logger)
}

type shutdowner interface {
	Shutdown() error
}

func shutdown(app shutdowner, logger *zap.Logger) {
	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func buildRepositories(pg *persistence.Postgres) (repository.DepartmentRepository, repository.EmployeeRepository) {
	if !pg.Enabled() {
		departments := repository.NewMemoryDepartmentRepository()
		return departments, repository.NewMemoryEmployeeRepository(departments)
	}
	pool := pg.PoolHandle()
	return repository.NewDepartmentRepository(pool), repository.NewEmployeeRepository(pool)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
