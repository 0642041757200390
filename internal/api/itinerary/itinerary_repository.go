package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/voyplan/voyplan/app/observability/metrics"
	"github.com/voyplan/voyplan/internal/types"
)

var _ Repository = (*PostgresTripRepository)(nil)

// TripRecord is a stored recommendation row. Document is the
// recommendation JSON exactly as persisted; it is returned verbatim and
// never revalidated on the way out.
type TripRecord struct {
	ID        uuid.UUID
	City      string
	Document  json.RawMessage
	CreatedAt time.Time
}

// Repository defines the persistence contract for saved trips.
type Repository interface {
	SaveTrip(ctx context.Context, city string, document json.RawMessage) (uuid.UUID, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*TripRecord, error)
	DeleteTrip(ctx context.Context, tripID uuid.UUID) error
}

// Pool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type PostgresTripRepository struct {
	logger  *slog.Logger
	pgpool  Pool
	metrics *metrics.AppMetrics
}

// NewTripRepository builds the Postgres-backed store. appMetrics may be
// nil (tests).
func NewTripRepository(pgpool Pool, appMetrics *metrics.AppMetrics, logger *slog.Logger) *PostgresTripRepository {
	return &PostgresTripRepository{
		logger:  logger,
		pgpool:  pgpool,
		metrics: appMetrics,
	}
}

func (r *PostgresTripRepository) observe(ctx context.Context, start time.Time, err error) {
	if r.metrics == nil {
		return
	}
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1)
	}
}

func (r *PostgresTripRepository) SaveTrip(ctx context.Context, city string, document json.RawMessage) (uuid.UUID, error) {
	query := `
        INSERT INTO trips (city, recommendation)
        VALUES ($1, $2) RETURNING id
    `
	start := time.Now()
	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx, query, city, document).Scan(&id)
	r.observe(ctx, start, err)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert trip: %w", err)
	}
	return id, nil
}

func (r *PostgresTripRepository) GetTrip(ctx context.Context, tripID uuid.UUID) (*TripRecord, error) {
	query := `
        SELECT id, city, recommendation, created_at
        FROM trips
        WHERE id = $1
    `
	start := time.Now()
	var record TripRecord
	err := r.pgpool.QueryRow(ctx, query, tripID).Scan(
		&record.ID, &record.City, &record.Document, &record.CreatedAt,
	)
	r.observe(ctx, start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return &record, nil
}

func (r *PostgresTripRepository) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	query := `DELETE FROM trips WHERE id = $1`
	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, query, tripID)
	r.observe(ctx, start, err)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrTripNotFound
	}
	return nil
}
