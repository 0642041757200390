package venuestatus

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/voyplan/voyplan/app/observability/metrics"
	"github.com/voyplan/voyplan/internal/api/places"
	"github.com/voyplan/voyplan/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the contract for venue status snapshots.
type Service interface {
	GetVenueStatus(ctx context.Context, placeID string) (*types.VenueData, error)
	RefreshWatched(ctx context.Context)
}

type ServiceImpl struct {
	logger        *slog.Logger
	placesService places.Service
	signals       SignalSource
	pollInterval  time.Duration
	now           func() time.Time
	metrics       *metrics.AppMetrics

	// snapshots expire after one poll interval; watched tracks venues a
	// client asked about recently so the refresher knows what to rebuild.
	snapshots *gocache.Cache
	watched   *gocache.Cache
}

// NewServiceImpl builds the venue status service. appMetrics may be nil
// (tests); now defaults to time.Now when nil.
func NewServiceImpl(placesService places.Service, signals SignalSource, pollInterval time.Duration, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Minute
	}
	return &ServiceImpl{
		logger:        logger,
		placesService: placesService,
		signals:       signals,
		pollInterval:  pollInterval,
		now:           time.Now,
		metrics:       appMetrics,
		snapshots:     gocache.New(pollInterval, 2*pollInterval),
		watched:       gocache.New(6*pollInterval, 12*pollInterval),
	}
}

// GetVenueStatus returns the cached snapshot for a venue, deriving a
// fresh one when the previous snapshot has expired.
func (s *ServiceImpl) GetVenueStatus(ctx context.Context, placeID string) (*types.VenueData, error) {
	ctx, span := otel.Tracer("VenueStatusService").Start(ctx, "GetVenueStatus")
	defer span.End()
	span.SetAttributes(attribute.String("venue.place_id", placeID))

	s.watched.SetDefault(placeID, struct{}{})

	if cached, ok := s.snapshots.Get(placeID); ok {
		if data, ok := cached.(*types.VenueData); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			span.SetStatus(codes.Ok, "Snapshot served from cache")
			return data, nil
		}
	}

	data, err := s.deriveSnapshot(ctx, placeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Snapshot derivation failed")
		return nil, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))
	span.SetStatus(codes.Ok, "Snapshot derived")
	return data, nil
}

// deriveSnapshot recomputes a venue's status: directory details plus the
// simulated crowd and wait signals, cached for one poll interval.
func (s *ServiceImpl) deriveSnapshot(ctx context.Context, placeID string) (*types.VenueData, error) {
	place, err := s.placesService.GetPlaceDetails(ctx, placeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to fetch venue details",
			slog.String("place_id", placeID),
			slog.Any("error", err))
		return nil, err
	}

	now := s.now()
	data := &types.VenueData{
		PlaceID:     place.ID,
		Name:        place.DisplayName.Text,
		Address:     place.FormattedAddress,
		Rating:      place.Rating,
		CrowdLevel:  s.signals.CrowdLevel(now),
		WaitMinutes: s.signals.WaitMinutes(),
		Simulated:   true,
		FetchedAt:   now,
	}
	if place.OpeningHours != nil {
		data.OpenNow = place.OpeningHours.OpenNow
	}

	s.snapshots.SetDefault(placeID, data)
	if s.metrics != nil {
		s.metrics.VenueSnapshotsTotal.Add(ctx, 1)
	}
	return data, nil
}

// RefreshWatched re-derives snapshots for every venue a client asked
// about recently. Failures are logged and skipped; the next poll cycle
// tries again.
func (s *ServiceImpl) RefreshWatched(ctx context.Context) {
	ctx, span := otel.Tracer("VenueStatusService").Start(ctx, "RefreshWatched")
	defer span.End()

	items := s.watched.Items()
	span.SetAttributes(attribute.Int("venues.watched", len(items)))

	for placeID := range items {
		if _, err := s.deriveSnapshot(ctx, placeID); err != nil {
			s.logger.WarnContext(ctx, "Venue refresh failed",
				slog.String("place_id", placeID),
				slog.Any("error", err))
		}
	}
	span.SetStatus(codes.Ok, "Watched venues refreshed")
}
