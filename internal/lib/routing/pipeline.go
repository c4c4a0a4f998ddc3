package routing

import (
	"github.com/dpup/routegen/internal/lib/geo"
)

// Generator interface defines the route geometry pipeline: selection across
// alternatives, extraction of step-level geometry, interval densification
// and per-segment speed metrics. Implementations hold no mutable state, so
// one Generator can serve concurrent callers.
type Generator interface {
	// Stitch a route's step polylines into one deduplicated path
	Extract(route Route) ([]geo.Point, error)

	// Insert synthetic points so consecutive points are at most
	// intervalMeters apart along the great-circle path
	Densify(points []geo.Point, intervalMeters float64) ([]geo.Point, error)

	// Extract then densify, rejecting geometry of fewer than 2 points
	DensifiedRouteGeometry(route Route, intervalMeters float64) ([]geo.Point, error)

	// Compute metrics for every alternative and pick the shortest
	CompareRoutes(routes []Route) (RouteComparison, error)

	// Average speed for each leg and step of a route
	SegmentSpeeds(route Route) []SpeedInfo
}

// generator implements the Generator interface
type generator struct {
	geoUtils geo.GeoUtils
}

// NewGenerator creates a new Generator implementation
func NewGenerator() Generator {
	return &generator{geoUtils: geo.NewGeoUtils()}
}

// DensifiedRouteGeometry composes Extract and Densify for a single route,
// typically the one CompareRoutes chose.
func (g *generator) DensifiedRouteGeometry(route Route, intervalMeters float64) ([]geo.Point, error) {
	points, err := g.Extract(route)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, ErrGeometryTooShort
	}
	return g.Densify(points, intervalMeters)
}
