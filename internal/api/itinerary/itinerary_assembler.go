package itinerary

import (
	"github.com/voyplan/voyplan/internal/types"
)

// Positional offsets into the attraction and restaurant result lists.
// Slots are disjoint slices of the same two source arrays; a short list
// silently yields empty later slots. There is no fallback, dedup,
// scoring, or constraint solving here.
const (
	slotSize = 2

	day1MorningOffset   = 0
	day1AfternoonOffset = 2
	day2MorningOffset   = 4
	day2AfternoonOffset = 6

	day1EveningOffset = 0
	day2EveningOffset = 2
)

// window returns the slice [offset, offset+slotSize) of places, clamped
// to the list's bounds. Size is exactly min(slotSize, max(0, len-offset)).
func window(places []types.Place, offset int) []types.Place {
	if offset >= len(places) {
		return []types.Place{}
	}
	end := offset + slotSize
	if end > len(places) {
		end = len(places)
	}
	return places[offset:end]
}

func attractionSlot(title, description string, attractions []types.Place, offset int) types.TimeSlot {
	return types.TimeSlot{
		Title:       title,
		Description: description,
		Places:      window(attractions, offset),
	}
}

// Assemble partitions the two ordered result lists into six fixed time
// slots across two days. Budget and trip type are deliberately not
// consulted; assembly is purely positional.
func Assemble(city, budget, tripType string, attractions, restaurants []types.Place) types.TripRecommendation {
	return types.TripRecommendation{
		City:     city,
		Budget:   budget,
		TripType: tripType,
		Day1: types.DayPlan{
			Morning:   attractionSlot("Morning Exploration", "Start the day with the city's highlights.", attractions, day1MorningOffset),
			Afternoon: attractionSlot("Afternoon Discoveries", "Keep exploring through the afternoon.", attractions, day1AfternoonOffset),
			Evening: types.TimeSlot{
				Title:       "Evening Dining",
				Description: "Wind down with dinner at a local favourite.",
				Places:      window(restaurants, day1EveningOffset),
			},
		},
		Day2: types.DayPlan{
			Morning:   attractionSlot("Morning Exploration", "Pick up where day one left off.", attractions, day2MorningOffset),
			Afternoon: attractionSlot("Afternoon Discoveries", "Round out the trip with a final stretch of sights.", attractions, day2AfternoonOffset),
			Evening: types.TimeSlot{
				Title:       "Evening Dining",
				Description: "Close out the trip with one more meal out.",
				Places:      window(restaurants, day2EveningOffset),
			},
		},
	}
}

// Fixed item start times per slot position. Every item carries a
// 60-minute duration and a zero cost placeholder.
var (
	morningTimes   = [slotSize]string{"09:00", "11:00"}
	afternoonTimes = [slotSize]string{"14:00", "16:00"}
	eveningTimes   = [slotSize]string{"19:00", "21:00"}
)

const itemDurationMinutes = 60

// PhotoURLFunc resolves a place's first photo into a URL; it may be nil
// when no photo rendering is wanted.
type PhotoURLFunc func(photo types.PlacePhoto) string

func flattenSlot(items []types.ItineraryItem, slot types.TimeSlot, day int, times [slotSize]string, itemType string, photoURL PhotoURLFunc) []types.ItineraryItem {
	for i, place := range slot.Places {
		if i >= slotSize {
			break
		}
		item := types.ItineraryItem{
			ID:              place.ID,
			Title:           place.DisplayName.Text,
			Day:             day,
			Time:            times[i],
			DurationMinutes: itemDurationMinutes,
			Type:            itemType,
			Cost:            0,
		}
		if photoURL != nil && len(place.Photos) > 0 {
			item.PhotoURL = photoURL(place.Photos[0])
		}
		items = append(items, item)
	}
	return items
}

// FlattenSchedule re-projects a recommendation into a flat, ordered list
// of schedulable items: day order, then morning/afternoon/evening.
func FlattenSchedule(rec types.TripRecommendation, photoURL PhotoURLFunc) []types.ItineraryItem {
	items := make([]types.ItineraryItem, 0, 12)
	days := [2]types.DayPlan{rec.Day1, rec.Day2}
	for i, day := range days {
		n := i + 1
		items = flattenSlot(items, day.Morning, n, morningTimes, "attraction", photoURL)
		items = flattenSlot(items, day.Afternoon, n, afternoonTimes, "attraction", photoURL)
		items = flattenSlot(items, day.Evening, n, eveningTimes, "restaurant", photoURL)
	}
	return items
}
