package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/voyplan/voyplan/internal/api/itinerary"
	"github.com/voyplan/voyplan/internal/api/places"
	"github.com/voyplan/voyplan/internal/api/venuestatus"
)

// Config contains dependencies needed for the router setup
type Config struct {
	PlacesHandler      *places.HandlerImpl
	ItineraryHandler   *itinerary.HandlerImpl
	VenueStatusHandler *venuestatus.HandlerImpl
	CorsOrigin         string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to
// be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CorsOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Heartbeat/Health check endpoint
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/cities/search", cfg.PlacesHandler.SearchCities)
		r.Post("/places/search", cfg.PlacesHandler.SearchPlaces)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/recommend", cfg.ItineraryHandler.RecommendTrip)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", cfg.ItineraryHandler.GetTrip)
				r.Get("/schedule", cfg.ItineraryHandler.GetSchedule)
				r.Get("/map", cfg.ItineraryHandler.GetTripMap)
				r.Delete("/", cfg.ItineraryHandler.DeleteTrip)
			})
		})

		r.Get("/venues/{placeID}/status", cfg.VenueStatusHandler.GetVenueStatus)
	})

	return r
}
