package places

import (
	"context"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voyplan/voyplan/internal/types"
)

// MockDirectory is a mock implementation of Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) SearchText(ctx context.Context, query, includedType string) ([]types.Place, error) {
	args := m.Called(ctx, query, includedType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func (m *MockDirectory) GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Place), args.Error(1)
}

func newTestService(directory Directory) *ServiceImpl {
	cache := gocache.New(time.Minute, time.Minute)
	strategy := &MediaURLStrategy{BaseURL: "https://places.example.com/v1", APIKey: "k", MaxWidthPx: 400}
	return NewServiceImpl(directory, cache, strategy, testLogger())
}

func TestSearchCities_RestrictsToLocalities(t *testing.T) {
	directory := new(MockDirectory)
	service := newTestService(directory)

	cities := []types.Place{{ID: "c1", DisplayName: types.LocalizedText{Text: "Paris"}}}
	directory.On("SearchText", mock.Anything, "Paris", "locality").Return(cities, nil)

	found, err := service.SearchCities(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, cities, found)
	directory.AssertExpectations(t)
}

func TestSearchPlaces_BuildsTypedQuery(t *testing.T) {
	directory := new(MockDirectory)
	service := newTestService(directory)

	restaurants := []types.Place{{ID: "r1"}}
	directory.On("SearchText", mock.Anything, "restaurant in Paris", "restaurant").Return(restaurants, nil)

	found, err := service.SearchPlaces(context.Background(), "Paris", "restaurant")
	require.NoError(t, err)
	assert.Equal(t, restaurants, found)
	directory.AssertExpectations(t)
}

func TestSearchPlaces_PropagatesError(t *testing.T) {
	directory := new(MockDirectory)
	service := newTestService(directory)

	directory.On("SearchText", mock.Anything, mock.Anything, mock.Anything).Return(nil, types.ErrMissingCredential)

	_, err := service.SearchPlaces(context.Background(), "Paris", "restaurant")
	assert.ErrorIs(t, err, types.ErrMissingCredential)
}

func TestGetPlaceDetails_MemoizedPerPlaceID(t *testing.T) {
	directory := new(MockDirectory)
	service := newTestService(directory)

	place := &types.Place{ID: "p1", DisplayName: types.LocalizedText{Text: "Louvre"}}
	directory.On("GetPlaceDetails", mock.Anything, "p1").Return(place, nil).Once()

	first, err := service.GetPlaceDetails(context.Background(), "p1")
	require.NoError(t, err)

	// Second lookup is served from the cache, not the directory.
	second, err := service.GetPlaceDetails(context.Background(), "p1")
	require.NoError(t, err)
	assert.Same(t, first, second)
	directory.AssertExpectations(t)
}

func TestGetPlaceDetails_ErrorNotCached(t *testing.T) {
	directory := new(MockDirectory)
	service := newTestService(directory)

	upstreamErr := &types.UpstreamError{StatusCode: 500, Body: "boom"}
	directory.On("GetPlaceDetails", mock.Anything, "p1").Return(nil, upstreamErr).Once()
	directory.On("GetPlaceDetails", mock.Anything, "p1").Return(&types.Place{ID: "p1"}, nil).Once()

	_, err := service.GetPlaceDetails(context.Background(), "p1")
	require.Error(t, err)

	place, err := service.GetPlaceDetails(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", place.ID)
	directory.AssertExpectations(t)
}
