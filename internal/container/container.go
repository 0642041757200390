package container

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/voyplan/voyplan/app/db"
	"github.com/voyplan/voyplan/app/observability/metrics"
	"github.com/voyplan/voyplan/config"
	"github.com/voyplan/voyplan/internal/api/itinerary"
	"github.com/voyplan/voyplan/internal/api/places"
	"github.com/voyplan/voyplan/internal/api/venuestatus"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	Pool               *pgxpool.Pool
	PlacesHandler      *places.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
	VenueStatusHandler *venuestatus.HandlerImpl
	VenueRefresher     *venuestatus.Refresher
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	appMetrics := metrics.Get()

	// Places gateway: directory client behind a per-process details cache
	directory := places.NewClient(
		cfg.Places.BaseURL,
		cfg.Places.APIKey,
		cfg.Places.MaxResults,
		cfg.Places.RequestTimeout,
		appMetrics,
		logger,
	)
	photoStrategy := &places.MediaURLStrategy{
		BaseURL:    cfg.Places.BaseURL,
		APIKey:     cfg.Places.APIKey,
		MaxWidthPx: cfg.Places.PhotoMaxWidthPx,
	}
	detailsCache := gocache.New(cfg.Places.DetailsCacheTTL, 2*cfg.Places.DetailsCacheTTL)
	placesService := places.NewServiceImpl(directory, detailsCache, photoStrategy, logger)
	placesHandler := places.NewHandlerImpl(placesService, logger)

	// Itinerary assembler and trip store
	tripRepo := itinerary.NewTripRepository(pool, appMetrics, logger)
	itineraryService := itinerary.NewServiceImpl(placesService, tripRepo, appMetrics, logger)
	itineraryHandler := itinerary.NewHandlerImpl(itineraryService, logger)

	// Venue status: simulated signals plus the periodic refresher
	signals := venuestatus.NewSimulatedSignals(cfg.VenueStatus.MaxWaitMinutes, time.Now().UnixNano())
	venueService := venuestatus.NewServiceImpl(placesService, signals, cfg.VenueStatus.PollInterval, appMetrics, logger)
	venueHandler := venuestatus.NewHandlerImpl(venueService, logger)
	venueRefresher := venuestatus.NewRefresher(venueService, cfg.VenueStatus.PollInterval, logger)

	return &Container{
		Config:             cfg,
		Logger:             logger,
		Pool:               pool,
		PlacesHandler:      placesHandler,
		ItineraryHandler:   itineraryHandler,
		VenueStatusHandler: venueHandler,
		VenueRefresher:     venueRefresher,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.VenueRefresher != nil {
		c.VenueRefresher.Stop()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
