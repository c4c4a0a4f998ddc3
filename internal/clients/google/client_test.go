package google

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/lib/routing"
)

// MockHTTPDoer is a mock implementation of HTTPDoer
type MockHTTPDoer struct {
	mock.Mock
}

func (m *MockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

// Helper function to create mock HTTP response
func createMockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

const directionsFixture = `{
  "status": "OK",
  "routes": [
    {
      "summary": "CA-4 E",
      "overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC"},
      "legs": [
        {
          "distance": {"value": 11200, "text": "11.2 km"},
          "duration": {"value": 780, "text": "13 mins"},
          "duration_in_traffic": {"value": 840, "text": "14 mins"},
          "steps": [
            {
              "distance": {"value": 11200, "text": "11.2 km"},
              "duration": {"value": 780, "text": "13 mins"},
              "polyline": {"points": "_p~iF~ps|U_ulLnnqC"}
            }
          ]
        }
      ]
    },
    {
      "summary": "Murphys Grade Rd",
      "legs": [
        {
          "distance": {"value": 12950, "text": "13 km"},
          "duration": {"value": 900, "text": "15 mins"},
          "steps": []
        }
      ]
    }
  ]
}`

func TestDirections_Success(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, directionsFixture), nil)

	client := NewClientWithHTTPDoer("test-api-key", "https://maps.googleapis.com", mockHTTP)

	origin := geo.Point{Latitude: 38.0675, Longitude: -120.5436}
	destination := geo.Point{Latitude: 38.1391, Longitude: -120.4561}

	routes, err := client.Directions(context.Background(), origin, destination)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	// First alternative carries full leg metadata
	require.Len(t, routes[0].Legs, 1)
	require.NotNil(t, routes[0].Legs[0].Distance)
	assert.Equal(t, 11200.0, routes[0].Legs[0].Distance.Value)
	require.NotNil(t, routes[0].Legs[0].DurationInTraffic)
	assert.Equal(t, 840.0, routes[0].Legs[0].DurationInTraffic.Value)
	require.NotNil(t, routes[0].OverviewPolyline)
	assert.NotEmpty(t, routes[0].OverviewPolyline.Points)
	require.Len(t, routes[0].Legs[0].Steps, 1)
	require.NotNil(t, routes[0].Legs[0].Steps[0].Polyline)

	// Second alternative omits the optional fields
	assert.Nil(t, routes[1].OverviewPolyline)
	assert.Nil(t, routes[1].Legs[0].DurationInTraffic)

	mockHTTP.AssertExpectations(t)
}

func TestDirections_RequestShape(t *testing.T) {
	var captured *http.Request
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Run(func(args mock.Arguments) {
		captured = args.Get(0).(*http.Request)
	}).Return(createMockResponse(200, directionsFixture), nil)

	client := NewClientWithHTTPDoer("test-api-key", "https://maps.googleapis.com", mockHTTP)
	_, err := client.Directions(context.Background(),
		geo.Point{Latitude: 38.0675, Longitude: -120.5436},
		geo.Point{Latitude: 38.1391, Longitude: -120.4561})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/maps/api/directions/json", captured.URL.Path)

	query := captured.URL.Query()
	assert.Equal(t, "38.0675,-120.5436", query.Get("origin"))
	assert.Equal(t, "38.1391,-120.4561", query.Get("destination"))
	assert.Equal(t, "driving", query.Get("mode"))
	assert.Equal(t, "true", query.Get("alternatives"))
	assert.Equal(t, "test-api-key", query.Get("key"))
}

func TestDirections_ZeroResults(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, `{"status": "ZERO_RESULTS", "routes": []}`), nil)

	client := NewClientWithHTTPDoer("test-api-key", "https://maps.googleapis.com", mockHTTP)
	_, err := client.Directions(context.Background(), geo.Point{}, geo.Point{})
	assert.ErrorIs(t, err, routing.ErrNoRoutes)
}

func TestDirections_APIStatusError(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, `{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid.", "routes": []}`), nil)

	client := NewClientWithHTTPDoer("bad-key", "https://maps.googleapis.com", mockHTTP)
	_, err := client.Directions(context.Background(), geo.Point{}, geo.Point{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestDirections_HTTPError(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(500, "internal error"), nil)

	client := NewClientWithHTTPDoer("test-api-key", "https://maps.googleapis.com", mockHTTP)
	_, err := client.Directions(context.Background(), geo.Point{}, geo.Point{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error 500")
}

func TestDirections_RateLimit(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(429, ""), nil)

	client := NewClientWithHTTPDoer("test-api-key", "https://maps.googleapis.com", mockHTTP)
	_, err := client.Directions(context.Background(), geo.Point{}, geo.Point{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
