package types

import "time"

// CrowdLevel is a coarse, simulated occupancy label.
type CrowdLevel string

const (
	CrowdLevelLow      CrowdLevel = "Low"
	CrowdLevelModerate CrowdLevel = "Moderate"
	CrowdLevelHigh     CrowdLevel = "High"
	CrowdLevelVeryHigh CrowdLevel = "Very High"
)

// VenueData is an ephemeral venue snapshot: directory details combined
// with simulated crowd and wait signals. Recomputed every poll cycle,
// never persisted, no history retained.
type VenueData struct {
	PlaceID     string     `json:"placeId"`
	Name        string     `json:"name"`
	Address     string     `json:"address,omitempty"`
	Rating      float64    `json:"rating,omitempty"`
	OpenNow     bool       `json:"openNow"`
	CrowdLevel  CrowdLevel `json:"crowdLevel"`
	WaitMinutes int        `json:"waitMinutes"`
	Simulated   bool       `json:"simulated"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}
