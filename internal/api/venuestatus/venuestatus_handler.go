package venuestatus

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
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

// GetVenueStatus handles GET /venues/{placeID}/status.
func (h *HandlerImpl) GetVenueStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("VenueStatusHandler").Start(r.Context(), "GetVenueStatus")
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetVenueStatus"))

	placeID := chi.URLParam(r, "placeID")
	if placeID == "" {
		span.SetStatus(codes.Error, "Missing place id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "place id is required")
		return
	}

	data, err := h.service.GetVenueStatus(ctx, placeID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to get venue status",
			slog.String("place_id", placeID),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")

		var upstreamErr *types.UpstreamError
		switch {
		case errors.Is(err, types.ErrMissingCredential):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to get venue status", types.ErrMissingCredential.Error())
		case errors.As(err, &upstreamErr):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to get venue status", upstreamErr.Error())
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get venue status")
		}
		return
	}

	span.SetStatus(codes.Ok, "Venue status returned")
	api.WriteJSONResponse(w, r, http.StatusOK, data)
}
