package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voyplan/voyplan/internal/types"
)

// MockPlacesService is a mock implementation of places.Service
type MockPlacesService struct {
	mock.Mock
}

func (m *MockPlacesService) SearchCities(ctx context.Context, name string) ([]types.Place, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func (m *MockPlacesService) SearchPlaces(ctx context.Context, name, placeType string) ([]types.Place, error) {
	args := m.Called(ctx, name, placeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func (m *MockPlacesService) GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Place), args.Error(1)
}

func (m *MockPlacesService) PhotoURL(photo types.PlacePhoto) string {
	args := m.Called(photo)
	return args.String(0)
}

// MockTripRepository is a mock implementation of Repository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) SaveTrip(ctx context.Context, city string, document json.RawMessage) (uuid.UUID, error) {
	args := m.Called(ctx, city, document)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTripRepository) GetTrip(ctx context.Context, tripID uuid.UUID) (*TripRecord, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TripRecord), args.Error(1)
}

func (m *MockTripRepository) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	args := m.Called(ctx, tripID)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildRecommendation_Success(t *testing.T) {
	ctx := context.Background()
	placesSvc := new(MockPlacesService)
	repo := new(MockTripRepository)
	service := NewServiceImpl(placesSvc, repo, nil, testLogger())

	attractions := makePlaces("attr", 3)
	restaurants := makePlaces("rest", 1)
	tripID := uuid.New()

	placesSvc.On("SearchPlaces", mock.Anything, "Paris", attractionType).Return(attractions, nil)
	placesSvc.On("SearchPlaces", mock.Anything, "Paris", restaurantType).Return(restaurants, nil)
	repo.On("SaveTrip", mock.Anything, "Paris", mock.AnythingOfType("json.RawMessage")).Return(tripID, nil)

	resp, err := service.BuildRecommendation(ctx, "Paris", "medium", "culture")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, tripID, resp.TripID)
	assert.Equal(t, "Paris", resp.City)
	assert.Len(t, resp.Day1.Morning.Places, 2)
	assert.Len(t, resp.Day1.Afternoon.Places, 1)
	assert.Len(t, resp.Day1.Evening.Places, 1)
	assert.Empty(t, resp.Day2.Morning.Places)

	// The saved document round-trips to the same recommendation.
	savedDoc := repo.Calls[0].Arguments.Get(2).(json.RawMessage)
	var saved types.TripRecommendation
	require.NoError(t, json.Unmarshal(savedDoc, &saved))
	assert.Equal(t, resp.TripRecommendation, saved)

	placesSvc.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestBuildRecommendation_UpstreamFailure(t *testing.T) {
	ctx := context.Background()
	placesSvc := new(MockPlacesService)
	repo := new(MockTripRepository)
	service := NewServiceImpl(placesSvc, repo, nil, testLogger())

	upstreamErr := &types.UpstreamError{StatusCode: 403, Body: "denied"}
	placesSvc.On("SearchPlaces", mock.Anything, "Paris", attractionType).Return(nil, upstreamErr)
	placesSvc.On("SearchPlaces", mock.Anything, "Paris", restaurantType).Return(makePlaces("rest", 1), nil).Maybe()

	resp, err := service.BuildRecommendation(ctx, "Paris", "medium", "culture")
	assert.Nil(t, resp)

	var ue *types.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 403, ue.StatusCode)
	repo.AssertNotCalled(t, "SaveTrip", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTripDocument_ReturnsStoredBytesVerbatim(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTripRepository)
	service := NewServiceImpl(new(MockPlacesService), repo, nil, testLogger())

	tripID := uuid.New()
	document := json.RawMessage(`{"city":"Paris","day1":{},"day2":{},"extraField":42}`)
	repo.On("GetTrip", mock.Anything, tripID).Return(&TripRecord{ID: tripID, City: "Paris", Document: document}, nil)

	got, err := service.GetTripDocument(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, document, got)
}

func TestGetTripDocument_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTripRepository)
	service := NewServiceImpl(new(MockPlacesService), repo, nil, testLogger())

	tripID := uuid.New()
	repo.On("GetTrip", mock.Anything, tripID).Return(nil, types.ErrTripNotFound)

	_, err := service.GetTripDocument(ctx, tripID)
	assert.ErrorIs(t, err, types.ErrTripNotFound)
}

func TestGetSchedule_MalformedDocument(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTripRepository)
	service := NewServiceImpl(new(MockPlacesService), repo, nil, testLogger())

	tripID := uuid.New()
	repo.On("GetTrip", mock.Anything, tripID).Return(&TripRecord{ID: tripID, Document: json.RawMessage(`{not json`)}, nil)

	_, err := service.GetSchedule(ctx, tripID)
	assert.ErrorIs(t, err, types.ErrMalformedTrip)
}

func TestGetSchedule_Success(t *testing.T) {
	ctx := context.Background()
	placesSvc := new(MockPlacesService)
	repo := new(MockTripRepository)
	service := NewServiceImpl(placesSvc, repo, nil, testLogger())

	rec := Assemble("Paris", "", "", makePlaces("attr", 2), makePlaces("rest", 1))
	document, err := json.Marshal(rec)
	require.NoError(t, err)

	tripID := uuid.New()
	repo.On("GetTrip", mock.Anything, tripID).Return(&TripRecord{ID: tripID, Document: document}, nil)
	placesSvc.On("PhotoURL", mock.Anything).Return("https://example.com/photo")

	items, err := service.GetSchedule(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "https://example.com/photo", items[0].PhotoURL)
}

func TestGetTripMap(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTripRepository)
	service := NewServiceImpl(new(MockPlacesService), repo, nil, testLogger())

	rec := Assemble("Paris", "", "", makePlaces("attr", 2), nil)
	document, err := json.Marshal(rec)
	require.NoError(t, err)

	tripID := uuid.New()
	repo.On("GetTrip", mock.Anything, tripID).Return(&TripRecord{ID: tripID, Document: document}, nil)

	view, err := service.GetTripMap(ctx, tripID)
	require.NoError(t, err)
	assert.Len(t, view.Markers, 2)
	require.NotNil(t, view.Viewport)
	assert.Equal(t, 16, view.Viewport.MaxZoom)
}

func TestGetTripMap_EmptyTrip(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTripRepository)
	service := NewServiceImpl(new(MockPlacesService), repo, nil, testLogger())

	tripID := uuid.New()
	repo.On("GetTrip", mock.Anything, tripID).Return(&TripRecord{ID: tripID, Document: json.RawMessage(`{"city":"Ghost Town","day1":{},"day2":{}}`)}, nil)

	view, err := service.GetTripMap(ctx, tripID)
	require.NoError(t, err)
	assert.Empty(t, view.Markers)
	assert.Nil(t, view.Viewport)
}

func TestDeleteTrip_PropagatesNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTripRepository)
	service := NewServiceImpl(new(MockPlacesService), repo, nil, testLogger())

	tripID := uuid.New()
	repo.On("DeleteTrip", mock.Anything, tripID).Return(types.ErrTripNotFound)

	err := service.DeleteTrip(ctx, tripID)
	assert.True(t, errors.Is(err, types.ErrTripNotFound))
}
