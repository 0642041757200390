package places

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/voyplan/voyplan/internal/api"
	"github.com/voyplan/voyplan/internal/types"
)

type HandlerImpl struct {
	logger  *slog.Logger
	service Service
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:  logger,
		service: service,
	}
}

// SearchCities handles POST /cities/search - body {cityName}.
func (h *HandlerImpl) SearchCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlacesHandler").Start(r.Context(), "SearchCities")
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchCities"))

	var req types.SearchCitiesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(&req); err != nil {
		l.WarnContext(ctx, "Request validation failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Validation failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cities, err := h.service.SearchCities(ctx, req.CityName)
	if err != nil {
		l.ErrorContext(ctx, "City search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writePlacesError(w, r, err, "Failed to search cities")
		return
	}

	span.SetStatus(codes.Ok, "Cities returned")
	api.WriteJSONResponse(w, r, http.StatusOK, types.PlacesSearchResponse{Places: cities})
}

// SearchPlaces handles POST /places/search - body {cityName, type}.
func (h *HandlerImpl) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlacesHandler").Start(r.Context(), "SearchPlaces")
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchPlaces"))

	var req types.SearchPlacesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(&req); err != nil {
		l.WarnContext(ctx, "Request validation failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "Validation failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	found, err := h.service.SearchPlaces(ctx, req.CityName, req.Type)
	if err != nil {
		l.ErrorContext(ctx, "Place search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writePlacesError(w, r, err, "Failed to search places")
		return
	}

	span.SetStatus(codes.Ok, "Places returned")
	api.WriteJSONResponse(w, r, http.StatusOK, types.PlacesSearchResponse{Places: found})
}

// writePlacesError maps the error taxonomy onto the fixed envelope. All
// upstream and configuration failures surface as 500 per the API contract.
func writePlacesError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var upstreamErr *types.UpstreamError
	switch {
	case errors.Is(err, types.ErrMissingCredential):
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, message, types.ErrMissingCredential.Error())
	case errors.As(err, &upstreamErr):
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, message, upstreamErr.Error())
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, message)
	}
}
