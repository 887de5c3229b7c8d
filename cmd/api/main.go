package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	dashboardHttp "ga-dashboard-service/internal/dashboard/adapters/http/fiber"
	dashboardRepoPg "ga-dashboard-service/internal/dashboard/adapters/postgres"
	dashboardSession "ga-dashboard-service/internal/dashboard/adapters/session"
	dashboardPorts "ga-dashboard-service/internal/dashboard/core/ports"
	dashboardUsecase "ga-dashboard-service/internal/dashboard/core/usecase"

	eventsHttp "ga-dashboard-service/internal/events/adapters/http/fiber"
	eventsRepoPg "ga-dashboard-service/internal/events/adapters/postgres"
	eventsUsecase "ga-dashboard-service/internal/events/core/usecase"

	"ga-dashboard-service/internal/config"
	"ga-dashboard-service/internal/logger"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "ga-dashboard-service/docs"
)

// @title GA Dashboard Service
// @version 1.0
// @description Per-session Google Analytics dashboard panels computed from daily event rows.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		zl.Fatal("invalid timezone", zap.Error(err))
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		zl.Fatal("failed to open postgres", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		zl.Fatal("failed to ping postgres", zap.Error(err))
	}

	// Session store
	var sessions dashboardPorts.SessionStorePort
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zl.Fatal("failed to ping redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}

		sessions = dashboardSession.NewRedisStore(rdb, cfg.App.Name+":", cfg.Redis.SessionTTL)
		zl.Info("sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = dashboardSession.NewMemoryStore(cfg.Redis.SessionTTL)
		zl.Info("sessions stored in memory")
	}

	// Adapter-level DB wrappers
	eventsDB := eventsRepoPg.NewSQLDB(db)
	dashboardDB := dashboardRepoPg.NewSQLDB(db)

	// Repositories
	eventRepository := eventsRepoPg.NewEventRepository(eventsDB, cfg.Database.EventsTable)
	eventReader := dashboardRepoPg.NewEventRepository(dashboardDB, cfg.Database.EventsTable)
	siteRegistry := dashboardRepoPg.NewSiteRepository(dashboardDB, cfg.Database.SitesTable, cfg.Database.LegacyFlag)

	// Usecases
	storeEventUC := eventsUsecase.NewStoreEventUseCase(eventRepository, loc)
	dashboardUC := dashboardUsecase.NewLoadDashboardUseCase(
		eventReader,
		siteRegistry,
		sessions,
		dashboardUsecase.Config{
			CacheTTL:     cfg.Dashboard.CacheTTL,
			QueryTimeout: cfg.Dashboard.QueryTimeout,
			Location:     loc,
		},
		zl.Named("dashboard"),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// events endpoints
	eventsHandler := eventsHttp.NewEventHandler(storeEventUC)
	app.Post("/ga/events", eventsHandler.CreateEvent)
	app.Post("/ga/events/bulk", eventsHandler.BulkCreateEvents)

	// dashboard endpoints
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardUC, zl.Named("http"))
	dashboardHandler.Register(app, "/ga/dashboard")

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	addr := ":" + cfg.App.Port
	go func() {
		if err := app.Listen(addr); err != nil {
			zl.Error("fiber stopped", zap.Error(err))
		}
	}()

	zl.Info("server started", zap.String("addr", addr), zap.String("env", cfg.App.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zl.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("fiber shutdown error", zap.Error(err))
	}

	zl.Info("server exiting")
}
