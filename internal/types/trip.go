package types

import (
	"github.com/google/uuid"
)

// TimeSlot is one fixed window of a day plan. Places is an ordered
// positional slice of the source result list; slots are never reordered
// or deduplicated.
type TimeSlot struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Places      []Place `json:"places"`
}

// DayPlan groups the three slots of a single day.
type DayPlan struct {
	Morning   TimeSlot `json:"morning"`
	Afternoon TimeSlot `json:"afternoon"`
	Evening   TimeSlot `json:"evening"`
}

// TripRecommendation is the two-day itinerary assembled for a city.
// It is built once per recommend request and stored verbatim.
type TripRecommendation struct {
	City     string  `json:"city"`
	Budget   string  `json:"budget,omitempty"`
	TripType string  `json:"tripType,omitempty"`
	Day1     DayPlan `json:"day1"`
	Day2     DayPlan `json:"day2"`
}

// ItineraryItem is a flattened, schedulable re-projection of a Place.
// Time and duration are fixed by slot position; Cost is a placeholder.
type ItineraryItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Day             int    `json:"day"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Type            string `json:"type"`
	Cost            int    `json:"cost"`
	PhotoURL        string `json:"photoUrl,omitempty"`
}

// MapMarker is one renderable point for a trip's map view.
type MapMarker struct {
	PlaceID  string `json:"placeId"`
	Title    string `json:"title"`
	Location LatLng `json:"location"`
}

// MapViewport is a bounding box plus a zoom ceiling for near-coincident
// point sets.
type MapViewport struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
	MaxZoom   int    `json:"maxZoom"`
}

// TripMapResponse is the payload for a trip's map view.
type TripMapResponse struct {
	Markers  []MapMarker  `json:"markers"`
	Viewport *MapViewport `json:"viewport,omitempty"`
}

// SearchCitiesRequest is the body for POST /cities/search.
type SearchCitiesRequest struct {
	CityName string `json:"cityName" validate:"required,min=1,max=200"`
}

// SearchPlacesRequest is the body for POST /places/search.
type SearchPlacesRequest struct {
	CityName string `json:"cityName" validate:"required,min=1,max=200"`
	Type     string `json:"type" validate:"required,min=1,max=100"`
}

// RecommendTripRequest is the body for POST /trips/recommend. Budget and
// TripType are validated for membership but do not influence assembly.
type RecommendTripRequest struct {
	CityName string `json:"cityName" validate:"required,min=1,max=200"`
	Budget   string `json:"budget" validate:"omitempty,oneof=low medium high"`
	TripType string `json:"tripType" validate:"omitempty,oneof=culture food nature nightlife family"`
}

// RecommendTripResponse is the recommendation plus the id it was saved
// under, so clients can fetch it back later.
type RecommendTripResponse struct {
	TripID uuid.UUID `json:"tripId"`
	TripRecommendation
}
