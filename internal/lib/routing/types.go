package routing

import "errors"

// Sentinel errors for the geometry pipeline. Decode failures surface as
// geo.ErrInvalidPolyline wrapped with step context.
var (
	// ErrNoRoutes indicates an empty route collection was offered for
	// comparison or generation.
	ErrNoRoutes = errors.New("no routes to compare")

	// ErrGeometryTooShort indicates a route produced fewer than 2 usable
	// points; densification is undefined below that.
	ErrGeometryTooShort = errors.New("route geometry too short")

	// ErrInvalidInterval indicates a non-positive densification interval.
	ErrInvalidInterval = errors.New("interval must be positive")
)

// UnknownDuration is reported when any leg of a route lacks a duration.
// It is a degraded-data sentinel, not an error.
const UnknownDuration = -1

// TextValue mirrors the Directions API {text, value} metric objects.
// Value carries meters for distances and seconds for durations.
type TextValue struct {
	Value float64 `json:"value"`
	Text  string  `json:"text,omitempty"`
}

// EncodedPolyline mirrors the Directions API polyline container.
type EncodedPolyline struct {
	Points string `json:"points"`
}

// Step is the finest-grained maneuver-level subdivision of a leg. All fields
// are optional upstream; nil means the API omitted them.
type Step struct {
	Polyline          *EncodedPolyline `json:"polyline,omitempty"`
	Distance          *TextValue       `json:"distance,omitempty"`
	Duration          *TextValue       `json:"duration,omitempty"`
	DurationInTraffic *TextValue       `json:"duration_in_traffic,omitempty"`
}

// Leg is one origin-to-waypoint segment of a route.
type Leg struct {
	Steps             []Step     `json:"steps"`
	Distance          *TextValue `json:"distance,omitempty"`
	Duration          *TextValue `json:"duration,omitempty"`
	DurationInTraffic *TextValue `json:"duration_in_traffic,omitempty"`
}

// Route is one alternative returned by the Directions API. The overview
// polyline is coarser than step-level geometry and is only consulted as a
// distance fallback when leg metadata is missing.
type Route struct {
	Legs             []Leg            `json:"legs"`
	OverviewPolyline *EncodedPolyline `json:"overview_polyline,omitempty"`
	Summary          string           `json:"summary,omitempty"`
}

// RouteMetrics holds the derived totals for one candidate route.
// DistanceMeters is +Inf when no distance could be derived at all;
// DurationSeconds is UnknownDuration when any leg omitted its duration.
type RouteMetrics struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	RouteIndex      int     `json:"route_index"`
}

// RouteComparison reports metrics for every returned alternative, in the
// order the API returned them, plus the index of the chosen (shortest) one.
type RouteComparison struct {
	Routes      []RouteMetrics `json:"routes"`
	ChosenIndex int            `json:"chosen_index"`
	TotalRoutes int            `json:"total_routes"`
}

// SpeedInfo holds the average speed over one leg or step. ID is "leg-<i>"
// or "leg-<i>-step-<j>".
type SpeedInfo struct {
	ID                string  `json:"id"`
	MetersPerSecond   float64 `json:"meters_per_second"`
	KilometersPerHour float64 `json:"kilometers_per_hour"`
	DistanceMeters    float64 `json:"distance_meters"`
	DurationSeconds   float64 `json:"duration_seconds"`
}
