package itinerary

import (
	"math"

	"github.com/voyplan/voyplan/internal/types"
)

// nearSpanDegrees is the bounding-box span below which the viewport gets
// a zoom ceiling, so a single marker does not zoom in to street level.
const (
	nearSpanDegrees = 0.01
	nearMaxZoom     = 16
)

// Markers collects every place across the six slots, in slot order.
func Markers(rec types.TripRecommendation) []types.MapMarker {
	markers := make([]types.MapMarker, 0, 12)
	days := [2]types.DayPlan{rec.Day1, rec.Day2}
	for _, day := range days {
		for _, slot := range [3]types.TimeSlot{day.Morning, day.Afternoon, day.Evening} {
			for _, place := range slot.Places {
				markers = append(markers, types.MapMarker{
					PlaceID:  place.ID,
					Title:    place.DisplayName.Text,
					Location: place.Location,
				})
			}
		}
	}
	return markers
}

// FitViewport computes a bounding box over the marker set. An empty set
// produces no viewport and no error; single or near-coincident points get
// the zoom ceiling.
func FitViewport(markers []types.MapMarker) *types.MapViewport {
	if len(markers) == 0 {
		return nil
	}

	ne := markers[0].Location
	sw := markers[0].Location
	for _, m := range markers[1:] {
		ne.Latitude = math.Max(ne.Latitude, m.Location.Latitude)
		ne.Longitude = math.Max(ne.Longitude, m.Location.Longitude)
		sw.Latitude = math.Min(sw.Latitude, m.Location.Latitude)
		sw.Longitude = math.Min(sw.Longitude, m.Location.Longitude)
	}

	viewport := &types.MapViewport{Northeast: ne, Southwest: sw}

	latSpan := ne.Latitude - sw.Latitude
	lngSpan := ne.Longitude - sw.Longitude
	if latSpan < nearSpanDegrees && lngSpan < nearSpanDegrees {
		viewport.MaxZoom = nearMaxZoom
	}
	return viewport
}
