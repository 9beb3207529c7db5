package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/imanolea/wayfinder/internal/adapters/http"
	natsadapter "github.com/imanolea/wayfinder/internal/adapters/nats"
	"github.com/imanolea/wayfinder/internal/adapters/postgres"
	"github.com/imanolea/wayfinder/internal/adapters/valhalla"
	"github.com/imanolea/wayfinder/internal/adapters/valkey"
	"github.com/imanolea/wayfinder/internal/core/usecases"
	"github.com/imanolea/wayfinder/internal/pkg/config"
	"github.com/imanolea/wayfinder/internal/pkg/logging"
	"github.com/imanolea/wayfinder/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("wayfinder-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go db.ReportPoolMetrics(ctx, 15*time.Second)

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS
	events, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer events.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Routing engine
	engine := valhalla.New(cfg.Engine.URL, time.Duration(cfg.Engine.Timeout)*time.Second)

	// Repos
	tripRepo := postgres.NewTripRepo(db)
	statusRepo := postgres.NewStatusRepo(db)

	// Use cases
	routingSvc := usecases.NewRoutingService(engine, tripRepo, cache, events, cfg.Engine.RouteCacheTTL)
	matrixSvc := usecases.NewMatrixService(engine)
	elevationSvc := usecases.NewElevationService(engine)
	statusSvc := usecases.NewStatusService(engine, statusRepo, cache, cfg.Engine.StatusCacheTTL)
	tripSvc := usecases.NewTripService(tripRepo)
	shapeSvc := usecases.NewShapeService()

	deps := &http.Dependencies{
		Routing:   routingSvc,
		Matrix:    matrixSvc,
		Elevation: elevationSvc,
		Status:    statusSvc,
		Trips:     tripSvc,
		Shapes:    shapeSvc,
		NATS:      natsConn,
		DB:        db,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Wayfinder API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
