package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairload-app/fairload/internal/api"
	"github.com/fairload-app/fairload/internal/burnout"
	"github.com/fairload-app/fairload/internal/config"
	"github.com/fairload-app/fairload/internal/culture"
	"github.com/fairload-app/fairload/internal/events"
	"github.com/fairload-app/fairload/internal/evolution"
	"github.com/fairload-app/fairload/internal/family"
	"github.com/fairload-app/fairload/internal/lifestage"
	"github.com/fairload-app/fairload/internal/relstyle"
	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/version"
	"github.com/fairload-app/fairload/internal/weights"
)

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event broker, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event broker")
		}
	}

	// Core services
	registry := version.NewRegistry(db, logger)
	calculator := weights.NewCalculator(registry, logger)
	lifestageSvc := lifestage.NewService(db, logger)
	cultureSvc := culture.NewService(db, logger)
	relstyleSvc := relstyle.NewService(db, logger)
	burnoutSvc := burnout.NewService(db, eventsClient, logger)
	familySvc := family.NewService(db, calculator, lifestageSvc, cultureSvc, relstyleSvc, burnoutSvc, logger)
	engine := evolution.NewEngine(db, eventsClient, registry, logger)

	// Evolution worker
	if cfg.Evolution.Enabled {
		worker := evolution.NewWorker(engine, cfg.EvolutionInterval(), logger)
		worker.Start(ctx)
		defer worker.Stop()
		logger.Info("evolution worker started", "interval", cfg.EvolutionInterval())
	}

	// API server
	router := api.NewRouter(api.Deps{
		Store:              db,
		Events:             eventsClient,
		Registry:           registry,
		Calculator:         calculator,
		Family:             familySvc,
		LifeStage:          lifestageSvc,
		Culture:            cultureSvc,
		Relationship:       relstyleSvc,
		Burnout:            burnoutSvc,
		Evolution:          engine,
		AdminToken:         cfg.Server.AdminToken,
		RateLimitPerMinute: cfg.API.RateLimitPerMinute,
		BatchWorkers:       cfg.API.BatchWorkers,
		Logger:             logger,
	})
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
