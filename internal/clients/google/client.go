package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/lib/routing"
)

// HTTPDoer abstracts the HTTP client so tests can substitute a mock
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Google Directions API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Directions API client. An empty baseURL selects
// the production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithHTTPDoer creates a client with a custom HTTP implementation,
// used by tests to inject mock responses
func NewClientWithHTTPDoer(apiKey, baseURL string, doer HTTPDoer) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: doer,
	}
}

// Directions fetches driving directions with alternatives between two
// points and returns every route alternative in API order. ZERO_RESULTS
// maps to routing.ErrNoRoutes so callers can distinguish "no route exists"
// from transport failures.
func (c *Client) Directions(ctx context.Context, origin, destination geo.Point) ([]routing.Route, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.directionsURL(origin, destination), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limit exceeded")
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var response directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch response.Status {
	case "OK":
		if len(response.Routes) == 0 {
			return nil, routing.ErrNoRoutes
		}
		return response.Routes, nil
	case "ZERO_RESULTS":
		return nil, routing.ErrNoRoutes
	default:
		if response.ErrorMessage != "" {
			return nil, fmt.Errorf("directions API status %s: %s", response.Status, response.ErrorMessage)
		}
		return nil, fmt.Errorf("directions API status %s", response.Status)
	}
}

// directionsURL builds the request URL: driving mode with alternatives so
// the selector has candidates to compare.
func (c *Client) directionsURL(origin, destination geo.Point) string {
	params := url.Values{}
	params.Set("origin", formatPoint(origin))
	params.Set("destination", formatPoint(destination))
	params.Set("mode", "driving")
	params.Set("alternatives", "true")
	params.Set("key", c.apiKey)
	return c.baseURL + "/maps/api/directions/json?" + params.Encode()
}

func formatPoint(p geo.Point) string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// directionsResponse represents the Directions API response envelope
type directionsResponse struct {
	Routes       []routing.Route `json:"routes"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
