package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/voyplan/voyplan/app/observability/metrics"
	"github.com/voyplan/voyplan/internal/types"
)

// Field masks restrict which fields the directory returns. Keeping them
// narrow keeps responses small and billing predictable.
const (
	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.rating," +
		"places.userRatingCount,places.types,places.location,places.photos," +
		"places.regularOpeningHours,places.priceLevel"
	detailsFieldMask = "id,displayName,formattedAddress,rating,userRatingCount," +
		"location,photos,regularOpeningHours,websiteUri"
)

// Client talks to the Google Places API (New). All calls carry the
// configured credential and a field mask; a request timeout bounds every
// outbound call so a hung upstream cannot hang a handler.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	metrics    *metrics.AppMetrics
}

// NewClient builds a directory client. appMetrics may be nil (tests).
func NewClient(baseURL, apiKey string, maxResults int, timeout time.Duration, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Client {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxResults: maxResults,
		metrics:    appMetrics,
	}
}

// SearchText performs a text search, optionally restricted to a place type.
func (c *Client) SearchText(ctx context.Context, query, includedType string) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesClient").Start(ctx, "SearchText")
	defer span.End()
	span.SetAttributes(attribute.String("places.query", query), attribute.String("places.type", includedType))

	if c.apiKey == "" {
		span.SetStatus(codes.Error, "missing credential")
		return nil, types.ErrMissingCredential
	}

	reqBody := types.TextSearchRequest{
		TextQuery:    query,
		IncludedType: includedType,
		MaxResults:   c.maxResults,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	body, err := c.do(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream call failed")
		return nil, err
	}

	var resp types.TextSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	span.SetAttributes(attribute.Int("places.count", len(resp.Places)))
	span.SetStatus(codes.Ok, "search completed")
	return resp.Places, nil
}

// GetPlaceDetails fetches a single place record by id.
func (c *Client) GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error) {
	ctx, span := otel.Tracer("PlacesClient").Start(ctx, "GetPlaceDetails")
	defer span.End()
	span.SetAttributes(attribute.String("places.id", placeID))

	if c.apiKey == "" {
		span.SetStatus(codes.Error, "missing credential")
		return nil, types.ErrMissingCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/"+placeID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build details request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)

	body, err := c.do(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream call failed")
		return nil, err
	}

	var place types.Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}

	span.SetStatus(codes.Ok, "details fetched")
	return &place, nil
}

// do executes the request, records upstream metrics and converts
// non-success statuses into *types.UpstreamError with the body logged.
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.Add(ctx, 1)
		c.metrics.UpstreamDurationSeconds.Record(ctx, elapsed.Seconds())
	}

	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamErrorsTotal.Add(ctx, 1)
		}
		return nil, fmt.Errorf("places directory request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.metrics != nil {
			c.metrics.UpstreamErrorsTotal.Add(ctx, 1)
		}
		c.logger.ErrorContext(ctx, "Places directory returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("url", req.URL.Path),
			slog.String("body", string(body)),
		)
		return nil, &types.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
