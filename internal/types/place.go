package types

// LatLng is a WGS84 coordinate pair as returned by the places directory.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocalizedText mirrors the places directory's localized string wrapper.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// PlacePhoto is a photo resource reference. Name is the full resource
// name ("places/{placeID}/photos/{reference}") used to build media URLs.
type PlacePhoto struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx,omitempty"`
	HeightPx int    `json:"heightPx,omitempty"`
}

// PlaceOpeningHours carries the subset of opening-hours data we request
// through the field mask.
type PlaceOpeningHours struct {
	OpenNow             bool     `json:"openNow"`
	WeekdayDescriptions []string `json:"weekdayDescriptions,omitempty"`
}

// Place is an external directory record for a point of interest.
// It is immutable as received; this system never owns or mutates it.
type Place struct {
	ID               string             `json:"id"`
	DisplayName      LocalizedText      `json:"displayName"`
	FormattedAddress string             `json:"formattedAddress,omitempty"`
	Rating           float64            `json:"rating,omitempty"`
	UserRatingCount  int                `json:"userRatingCount,omitempty"`
	Types            []string           `json:"types,omitempty"`
	Location         LatLng             `json:"location"`
	Photos           []PlacePhoto       `json:"photos,omitempty"`
	OpeningHours     *PlaceOpeningHours `json:"regularOpeningHours,omitempty"`
	PriceLevel       string             `json:"priceLevel,omitempty"`
	Website          string             `json:"websiteUri,omitempty"`
}

// TextSearchRequest is the body sent to the directory's text search endpoint.
type TextSearchRequest struct {
	TextQuery    string `json:"textQuery"`
	IncludedType string `json:"includedType,omitempty"`
	MaxResults   int    `json:"maxResultCount,omitempty"`
}

// TextSearchResponse is the envelope the directory returns for text search.
type TextSearchResponse struct {
	Places []Place `json:"places"`
}

// PlacesSearchResponse is what our own search endpoints return to clients.
type PlacesSearchResponse struct {
	Places []Place `json:"places"`
}
