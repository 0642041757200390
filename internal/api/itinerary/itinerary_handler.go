package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
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

// RecommendTrip handles POST /trips/recommend - body {cityName, budget, tripType}.
func (h *HandlerImpl) RecommendTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "RecommendTrip")
	defer span.End()

	l := h.logger.With(slog.String("handler", "RecommendTrip"))

	var req types.RecommendTripRequest
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

	resp, err := h.service.BuildRecommendation(ctx, req.CityName, req.Budget, req.TripType)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build recommendation", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writeTripError(w, r, err, "Failed to build trip recommendation")
		return
	}

	span.SetStatus(codes.Ok, "Recommendation returned")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetTrip handles GET /trips/{tripID} - returns the stored document verbatim.
func (h *HandlerImpl) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetTrip")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetTrip"))

	tripID, ok := h.tripIDFromURL(w, r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid trip id")
		return
	}

	document, err := h.service.GetTripDocument(ctx, tripID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to load trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writeTripError(w, r, err, "Failed to load trip")
		return
	}

	// Stored verbatim, returned verbatim.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(document); err != nil {
		l.ErrorContext(ctx, "Failed to write trip document", slog.Any("error", err))
	}
	span.SetStatus(codes.Ok, "Trip returned")
}

// GetSchedule handles GET /trips/{tripID}/schedule.
func (h *HandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetSchedule")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetSchedule"))

	tripID, ok := h.tripIDFromURL(w, r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid trip id")
		return
	}

	items, err := h.service.GetSchedule(ctx, tripID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build schedule", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writeTripError(w, r, err, "Failed to build schedule")
		return
	}

	span.SetStatus(codes.Ok, "Schedule returned")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{"items": items})
}

// GetTripMap handles GET /trips/{tripID}/map.
func (h *HandlerImpl) GetTripMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetTripMap")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetTripMap"))

	tripID, ok := h.tripIDFromURL(w, r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid trip id")
		return
	}

	view, err := h.service.GetTripMap(ctx, tripID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build map view", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writeTripError(w, r, err, "Failed to build map view")
		return
	}

	span.SetStatus(codes.Ok, "Map view returned")
	api.WriteJSONResponse(w, r, http.StatusOK, view)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (h *HandlerImpl) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "DeleteTrip")
	defer span.End()

	l := h.logger.With(slog.String("handler", "DeleteTrip"))

	tripID, ok := h.tripIDFromURL(w, r)
	if !ok {
		span.SetStatus(codes.Error, "Invalid trip id")
		return
	}

	if err := h.service.DeleteTrip(ctx, tripID); err != nil {
		l.ErrorContext(ctx, "Failed to delete trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		writeTripError(w, r, err, "Failed to delete trip")
		return
	}

	span.SetStatus(codes.Ok, "Trip deleted")
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

func (h *HandlerImpl) tripIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "tripID")
	tripID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid trip id in URL", slog.String("trip_id", raw))
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid trip id")
		return uuid.Nil, false
	}
	return tripID, true
}

// writeTripError maps the error taxonomy onto the fixed envelope.
func writeTripError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var upstreamErr *types.UpstreamError
	switch {
	case errors.Is(err, types.ErrTripNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, types.ErrTripNotFound.Error())
	case errors.Is(err, types.ErrMalformedTrip):
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, message, types.ErrMalformedTrip.Error())
	case errors.Is(err, types.ErrMissingCredential):
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, message, types.ErrMissingCredential.Error())
	case errors.As(err, &upstreamErr):
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, message, upstreamErr.Error())
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, message)
	}
}
