package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	UpstreamRequestsTotal    metric.Int64Counter
	UpstreamDurationSeconds  metric.Float64Histogram
	UpstreamErrorsTotal      metric.Int64Counter
	RecommendRequestsTotal   metric.Int64Counter
	RecommendDurationSeconds metric.Float64Histogram
	VenueSnapshotsTotal      metric.Int64Counter
	DbQueryDurationSeconds   metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("voyplan")
		var err error
		m := &AppMetrics{}

		m.UpstreamRequestsTotal, err = meter.Int64Counter(
			"places_upstream_requests_total",
			metric.WithDescription("Total number of requests sent to the places directory"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_upstream_requests_total: %v", err)
		}

		m.UpstreamDurationSeconds, err = meter.Float64Histogram(
			"places_upstream_duration_seconds",
			metric.WithDescription("Duration of places directory requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_upstream_duration_seconds: %v", err)
		}

		m.UpstreamErrorsTotal, err = meter.Int64Counter(
			"places_upstream_errors_total",
			metric.WithDescription("Total number of non-success responses from the places directory"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create places_upstream_errors_total: %v", err)
		}

		m.RecommendRequestsTotal, err = meter.Int64Counter(
			"trip_recommend_requests_total",
			metric.WithDescription("Total number of trip recommend requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_recommend_requests_total: %v", err)
		}

		m.RecommendDurationSeconds, err = meter.Float64Histogram(
			"trip_recommend_duration_seconds",
			metric.WithDescription("Duration of trip recommend requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_recommend_duration_seconds: %v", err)
		}

		m.VenueSnapshotsTotal, err = meter.Int64Counter(
			"venue_status_snapshots_total",
			metric.WithDescription("Total number of venue status snapshots derived"),
			metric.WithUnit("{snapshot}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create venue_status_snapshots_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
