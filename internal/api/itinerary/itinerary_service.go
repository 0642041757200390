package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/voyplan/voyplan/app/observability/metrics"
	"github.com/voyplan/voyplan/internal/api/places"
	"github.com/voyplan/voyplan/internal/types"
)

const (
	attractionType = "tourist_attraction"
	restaurantType = "restaurant"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for trip recommendations.
type Service interface {
	BuildRecommendation(ctx context.Context, city, budget, tripType string) (*types.RecommendTripResponse, error)
	GetTripDocument(ctx context.Context, tripID uuid.UUID) (json.RawMessage, error)
	GetSchedule(ctx context.Context, tripID uuid.UUID) ([]types.ItineraryItem, error)
	GetTripMap(ctx context.Context, tripID uuid.UUID) (*types.TripMapResponse, error)
	DeleteTrip(ctx context.Context, tripID uuid.UUID) error
}

type ServiceImpl struct {
	logger         *slog.Logger
	placesService  places.Service
	tripRepository Repository
	metrics        *metrics.AppMetrics
}

// NewServiceImpl wires the assembler between the places service and the
// trip store. appMetrics may be nil (tests).
func NewServiceImpl(placesService places.Service, tripRepository Repository, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		placesService:  placesService,
		tripRepository: tripRepository,
		metrics:        appMetrics,
	}
}

// BuildRecommendation fetches attractions and restaurants for the city
// concurrently, partitions them into the six fixed slots and stores the
// resulting document. Budget and trip type are echoed on the response
// but never influence which places land in which slot.
func (s *ServiceImpl) BuildRecommendation(ctx context.Context, city, budget, tripType string) (*types.RecommendTripResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "BuildRecommendation")
	defer span.End()
	span.SetAttributes(
		attribute.String("trip.city", city),
		attribute.String("trip.budget", budget),
		attribute.String("trip.type", tripType),
	)

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecommendRequestsTotal.Add(ctx, 1)
			s.metrics.RecommendDurationSeconds.Record(ctx, time.Since(start).Seconds())
		}
	}()

	var attractions, restaurants []types.Place
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attractions, err = s.placesService.SearchPlaces(gctx, city, attractionType)
		return err
	})
	g.Go(func() error {
		var err error
		restaurants, err = s.placesService.SearchPlaces(gctx, city, restaurantType)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch places for recommendation",
			slog.String("city", city),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Place fetch failed")
		return nil, err
	}

	rec := Assemble(city, budget, tripType, attractions, restaurants)

	document, err := json.Marshal(rec)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	tripID, err := s.tripRepository.SaveTrip(ctx, city, document)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Trip save failed")
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	span.SetAttributes(
		attribute.String("trip.id", tripID.String()),
		attribute.Int("trip.attractions", len(attractions)),
		attribute.Int("trip.restaurants", len(restaurants)),
	)
	span.SetStatus(codes.Ok, "Recommendation assembled")

	return &types.RecommendTripResponse{
		TripID:             tripID,
		TripRecommendation: rec,
	}, nil
}

// GetTripDocument returns the stored recommendation exactly as persisted.
func (s *ServiceImpl) GetTripDocument(ctx context.Context, tripID uuid.UUID) (json.RawMessage, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetTripDocument")
	defer span.End()

	record, err := s.tripRepository.GetTrip(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Trip document retrieved")
	return record.Document, nil
}

// loadRecommendation fetches and parses a stored document. Parse failure
// is a terminal error state, not something to recover from partially.
func (s *ServiceImpl) loadRecommendation(ctx context.Context, tripID uuid.UUID) (*types.TripRecommendation, error) {
	record, err := s.tripRepository.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	var rec types.TripRecommendation
	if err := json.Unmarshal(record.Document, &rec); err != nil {
		s.logger.ErrorContext(ctx, "Stored trip document failed to parse",
			slog.String("trip_id", tripID.String()),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s", types.ErrMalformedTrip, err)
	}
	return &rec, nil
}

// GetSchedule flattens a stored recommendation into timed items.
func (s *ServiceImpl) GetSchedule(ctx context.Context, tripID uuid.UUID) ([]types.ItineraryItem, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetSchedule")
	defer span.End()

	rec, err := s.loadRecommendation(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	items := FlattenSchedule(*rec, s.placesService.PhotoURL)
	span.SetAttributes(attribute.Int("schedule.items", len(items)))
	span.SetStatus(codes.Ok, "Schedule flattened")
	return items, nil
}

// GetTripMap builds markers and a fitted viewport for a stored trip.
func (s *ServiceImpl) GetTripMap(ctx context.Context, tripID uuid.UUID) (*types.TripMapResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetTripMap")
	defer span.End()

	rec, err := s.loadRecommendation(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	markers := Markers(*rec)
	span.SetAttributes(attribute.Int("map.markers", len(markers)))
	span.SetStatus(codes.Ok, "Map view built")
	return &types.TripMapResponse{
		Markers:  markers,
		Viewport: FitViewport(markers),
	}, nil
}

// DeleteTrip removes a stored trip.
func (s *ServiceImpl) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "DeleteTrip")
	defer span.End()

	if err := s.tripRepository.DeleteTrip(ctx, tripID); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "Trip deleted")
	return nil
}
