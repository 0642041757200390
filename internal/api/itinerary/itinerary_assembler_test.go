package itinerary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyplan/voyplan/internal/types"
)

func makePlaces(prefix string, n int) []types.Place {
	places := make([]types.Place, n)
	for i := range places {
		places[i] = types.Place{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			DisplayName: types.LocalizedText{Text: fmt.Sprintf("%s %d", prefix, i)},
			Location:    types.LatLng{Latitude: 48.85 + float64(i)*0.001, Longitude: 2.35 + float64(i)*0.001},
			Photos:      []types.PlacePhoto{{Name: fmt.Sprintf("places/%s-%d/photos/ref%d", prefix, i, i)}},
		}
	}
	return places
}

func slotSizeFor(listLen, offset int) int {
	size := listLen - offset
	if size < 0 {
		size = 0
	}
	if size > slotSize {
		size = slotSize
	}
	return size
}

func TestAssemble_SlotSizes(t *testing.T) {
	// Slot sizes are exactly min(2, max(0, len-k)) for every offset.
	for attractions := 0; attractions <= 10; attractions++ {
		for restaurants := 0; restaurants <= 5; restaurants++ {
			name := fmt.Sprintf("a%d_r%d", attractions, restaurants)
			t.Run(name, func(t *testing.T) {
				rec := Assemble("Paris", "medium", "culture", makePlaces("attr", attractions), makePlaces("rest", restaurants))

				assert.Len(t, rec.Day1.Morning.Places, slotSizeFor(attractions, day1MorningOffset))
				assert.Len(t, rec.Day1.Afternoon.Places, slotSizeFor(attractions, day1AfternoonOffset))
				assert.Len(t, rec.Day2.Morning.Places, slotSizeFor(attractions, day2MorningOffset))
				assert.Len(t, rec.Day2.Afternoon.Places, slotSizeFor(attractions, day2AfternoonOffset))
				assert.Len(t, rec.Day1.Evening.Places, slotSizeFor(restaurants, day1EveningOffset))
				assert.Len(t, rec.Day2.Evening.Places, slotSizeFor(restaurants, day2EveningOffset))
			})
		}
	}
}

func TestAssemble_SlotsAreDisjointPositionalWindows(t *testing.T) {
	attractions := makePlaces("attr", 8)
	restaurants := makePlaces("rest", 4)
	rec := Assemble("Lisbon", "", "", attractions, restaurants)

	assert.Equal(t, attractions[0:2], rec.Day1.Morning.Places)
	assert.Equal(t, attractions[2:4], rec.Day1.Afternoon.Places)
	assert.Equal(t, attractions[4:6], rec.Day2.Morning.Places)
	assert.Equal(t, attractions[6:8], rec.Day2.Afternoon.Places)
	assert.Equal(t, restaurants[0:2], rec.Day1.Evening.Places)
	assert.Equal(t, restaurants[2:4], rec.Day2.Evening.Places)
}

func TestAssemble_ShortLists(t *testing.T) {
	// Three attractions and one restaurant: day1 fills first, everything
	// after the lists run out stays silently empty.
	rec := Assemble("Paris", "medium", "culture", makePlaces("attr", 3), makePlaces("rest", 1))

	assert.Len(t, rec.Day1.Morning.Places, 2)
	assert.Len(t, rec.Day1.Afternoon.Places, 1)
	assert.Len(t, rec.Day1.Evening.Places, 1)
	assert.Empty(t, rec.Day2.Morning.Places)
	assert.Empty(t, rec.Day2.Afternoon.Places)
	assert.Empty(t, rec.Day2.Evening.Places)
}

func TestAssemble_IgnoresBudgetAndTripType(t *testing.T) {
	attractions := makePlaces("attr", 8)
	restaurants := makePlaces("rest", 4)

	low := Assemble("Rome", "low", "food", attractions, restaurants)
	high := Assemble("Rome", "high", "nightlife", attractions, restaurants)

	assert.Equal(t, low.Day1, high.Day1)
	assert.Equal(t, low.Day2, high.Day2)
	assert.Equal(t, "low", low.Budget)
	assert.Equal(t, "nightlife", high.TripType)
}

func TestFlattenSchedule(t *testing.T) {
	rec := Assemble("Paris", "", "", makePlaces("attr", 8), makePlaces("rest", 4))

	items := FlattenSchedule(rec, nil)
	require.Len(t, items, 12)

	// Day order then morning/afternoon/evening order.
	assert.Equal(t, "attr-0", items[0].ID)
	assert.Equal(t, 1, items[0].Day)
	assert.Equal(t, "09:00", items[0].Time)
	assert.Equal(t, "11:00", items[1].Time)
	assert.Equal(t, "14:00", items[2].Time)
	assert.Equal(t, "rest-0", items[4].ID)
	assert.Equal(t, "restaurant", items[4].Type)
	assert.Equal(t, "19:00", items[4].Time)
	assert.Equal(t, 2, items[6].Day)

	for _, item := range items {
		assert.Equal(t, 60, item.DurationMinutes)
		assert.Equal(t, 0, item.Cost)
		assert.Empty(t, item.PhotoURL)
	}
}

func TestFlattenSchedule_PhotoURL(t *testing.T) {
	rec := Assemble("Paris", "", "", makePlaces("attr", 1), nil)

	items := FlattenSchedule(rec, func(photo types.PlacePhoto) string {
		return "https://example.com/" + photo.Name
	})
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/places/attr-0/photos/ref0", items[0].PhotoURL)
}

func TestFlattenSchedule_EmptyRecommendation(t *testing.T) {
	items := FlattenSchedule(types.TripRecommendation{City: "Nowhere"}, nil)
	assert.Empty(t, items)
}
