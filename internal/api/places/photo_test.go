package places

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyplan/voyplan/internal/types"
)

func TestMediaURLStrategy(t *testing.T) {
	strategy := &MediaURLStrategy{BaseURL: "https://places.example.com/v1", APIKey: "k", MaxWidthPx: 400}

	url := strategy.PhotoURL(types.PlacePhoto{Name: "places/p1/photos/ref1"})
	assert.Equal(t, "https://places.example.com/v1/places/p1/photos/ref1/media?maxWidthPx=400&key=k", url)

	assert.Empty(t, strategy.PhotoURL(types.PlacePhoto{}))
}

func TestSegmentStrategy(t *testing.T) {
	strategy := &SegmentStrategy{BaseURL: "https://places.example.com/v1", APIKey: "k", MaxWidthPx: 400}

	tests := []struct {
		name  string
		photo string
		want  string
	}{
		{
			name:  "well-formed resource name",
			photo: "places/p1/photos/ref1",
			want:  "https://places.example.com/v1/places/p1/photos/ref1/media?maxWidthPx=400&key=k",
		},
		{
			name:  "too few segments falls back to empty",
			photo: "places/p1/photos",
			want:  "",
		},
		{
			name:  "too many segments falls back to empty",
			photo: "v1/places/p1/photos/ref1",
			want:  "",
		},
		{
			name:  "empty name falls back to empty",
			photo: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strategy.PhotoURL(types.PlacePhoto{Name: tt.photo}))
		})
	}
}
