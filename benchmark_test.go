package main

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/voyplan/voyplan/internal/api/itinerary"
	"github.com/voyplan/voyplan/internal/types"
)

func benchmarkPlaces(prefix string, n int) []types.Place {
	places := make([]types.Place, n)
	for i := range places {
		places[i] = types.Place{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			DisplayName: types.LocalizedText{Text: fmt.Sprintf("%s %d", prefix, i)},
			Location:    types.LatLng{Latitude: 48.85 + float64(i)*0.001, Longitude: 2.35},
		}
	}
	return places
}

func BenchmarkAssemble(b *testing.B) {
	attractions := benchmarkPlaces("attr", 10)
	restaurants := benchmarkPlaces("rest", 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = itinerary.Assemble("Paris", "medium", "culture", attractions, restaurants)
	}
}

func BenchmarkFlattenSchedule(b *testing.B) {
	rec := itinerary.Assemble("Paris", "medium", "culture", benchmarkPlaces("attr", 8), benchmarkPlaces("rest", 4))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = itinerary.FlattenSchedule(rec, nil)
	}
}

func BenchmarkRecommendationRoundTrip(b *testing.B) {
	rec := itinerary.Assemble("Paris", "medium", "culture", benchmarkPlaces("attr", 8), benchmarkPlaces("rest", 4))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		document, err := json.Marshal(rec)
		if err != nil {
			b.Fatal(err)
		}
		var decoded types.TripRecommendation
		if err := json.Unmarshal(document, &decoded); err != nil {
			b.Fatal(err)
		}
	}
}
