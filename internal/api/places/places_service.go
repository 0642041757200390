package places

import (
	"context"
	"fmt"
	"log/slog"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/voyplan/voyplan/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Directory is the outbound contract toward the places directory,
// implemented by *Client and mocked in tests.
type Directory interface {
	SearchText(ctx context.Context, query, includedType string) ([]types.Place, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error)
}

// Service defines the business logic contract for place lookups.
type Service interface {
	SearchCities(ctx context.Context, name string) ([]types.Place, error)
	SearchPlaces(ctx context.Context, name, placeType string) ([]types.Place, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error)
	PhotoURL(photo types.PlacePhoto) string
}

type ServiceImpl struct {
	logger        *slog.Logger
	directory     Directory
	detailsCache  *gocache.Cache
	photoStrategy PhotoURLStrategy
}

// NewServiceImpl wires the directory client behind a per-process details
// cache, mirroring the lazy per-place-id memoization of the map popup.
func NewServiceImpl(directory Directory, detailsCache *gocache.Cache, photoStrategy PhotoURLStrategy, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:        logger,
		directory:     directory,
		detailsCache:  detailsCache,
		photoStrategy: photoStrategy,
	}
}

// SearchCities looks up localities matching the given name.
func (s *ServiceImpl) SearchCities(ctx context.Context, name string) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "SearchCities")
	defer span.End()

	cities, err := s.directory.SearchText(ctx, name, "locality")
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to search cities", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("cities.count", len(cities)))
	span.SetStatus(codes.Ok, "Cities search completed")
	return cities, nil
}

// SearchPlaces looks up places of the given type within a city.
func (s *ServiceImpl) SearchPlaces(ctx context.Context, name, placeType string) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "SearchPlaces")
	defer span.End()

	query := fmt.Sprintf("%s in %s", placeType, name)
	found, err := s.directory.SearchText(ctx, query, placeType)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to search places",
			slog.String("city", name),
			slog.String("type", placeType),
			slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("places.count", len(found)))
	span.SetStatus(codes.Ok, "Places search completed")
	return found, nil
}

// GetPlaceDetails returns a place record, memoized per place id for the
// lifetime of the cache.
func (s *ServiceImpl) GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error) {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "GetPlaceDetails")
	defer span.End()

	if cached, ok := s.detailsCache.Get(placeID); ok {
		if place, ok := cached.(*types.Place); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			span.SetStatus(codes.Ok, "Details served from cache")
			return place, nil
		}
	}

	place, err := s.directory.GetPlaceDetails(ctx, placeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch place details",
			slog.String("place_id", placeID),
			slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	s.detailsCache.Set(placeID, place, gocache.DefaultExpiration)
	span.SetAttributes(attribute.Bool("cache.hit", false))
	span.SetStatus(codes.Ok, "Details fetched")
	return place, nil
}

// PhotoURL builds a fetchable URL for a photo resource via the configured
// strategy.
func (s *ServiceImpl) PhotoURL(photo types.PlacePhoto) string {
	return s.photoStrategy.PhotoURL(photo)
}
