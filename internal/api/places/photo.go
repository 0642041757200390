package places

import (
	"fmt"
	"strings"

	"github.com/voyplan/voyplan/internal/types"
)

// PhotoURLStrategy turns a photo resource reference into a fetchable URL.
type PhotoURLStrategy interface {
	PhotoURL(photo types.PlacePhoto) string
}

var _ PhotoURLStrategy = (*MediaURLStrategy)(nil)
var _ PhotoURLStrategy = (*SegmentStrategy)(nil)

// MediaURLStrategy builds the v1 media endpoint URL directly from the
// full photo resource name.
type MediaURLStrategy struct {
	BaseURL    string
	APIKey     string
	MaxWidthPx int
}

func (s *MediaURLStrategy) PhotoURL(photo types.PlacePhoto) string {
	if photo.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/media?maxWidthPx=%d&key=%s", s.BaseURL, photo.Name, s.MaxWidthPx, s.APIKey)
}

// SegmentStrategy parses the structured resource name
// "places/{placeID}/photos/{reference}" by splitting on separators and
// indexing fixed positions. A name that does not have exactly four
// segments yields an empty string; that fallback is intentional and
// callers render no photo rather than erroring.
type SegmentStrategy struct {
	BaseURL    string
	APIKey     string
	MaxWidthPx int
}

func (s *SegmentStrategy) PhotoURL(photo types.PlacePhoto) string {
	parts := strings.Split(photo.Name, "/")
	if len(parts) != 4 {
		return ""
	}
	return fmt.Sprintf("%s/places/%s/photos/%s/media?maxWidthPx=%d&key=%s",
		s.BaseURL, parts[1], parts[3], s.MaxWidthPx, s.APIKey)
}
