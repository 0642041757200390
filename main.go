package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/voyplan/voyplan/app/db"
	appLogger "github.com/voyplan/voyplan/app/logger"
	"github.com/voyplan/voyplan/app/observability/metrics"
	"github.com/voyplan/voyplan/app/tracer"
	"github.com/voyplan/voyplan/config"
	"github.com/voyplan/voyplan/internal/container"
	api "github.com/voyplan/voyplan/internal/router"
)

func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations *before* initializing the main pool
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	deps, err := container.NewContainer(&cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize dependency container", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.Close()

	// Wait for DB to be ready
	if !deps.WaitForDB(ctx) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Background Refresher ---
	if err := deps.VenueRefresher.Start(ctx); err != nil {
		logger.Error("Failed to start venue status refresher", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Router Setup ---
	mainRouter := api.SetupRouter(&api.Config{
		PlacesHandler:      deps.PlacesHandler,
		ItineraryHandler:   deps.ItineraryHandler,
		VenueStatusHandler: deps.VenueStatusHandler,
		CorsOrigin:         cfg.Cors.Origin,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel() // Trigger shutdown if server fails unexpectedly
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	// Pool and refresher are closed by the container defer
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger(mode string) *slog.Logger {
	var logger *slog.Logger

	if mode == "development" || mode == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
