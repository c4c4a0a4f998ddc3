package routing

import (
	"fmt"
	"math"

	"github.com/dpup/routegen/internal/lib/geo"
)

// coordTolerance is the per-axis tolerance below which two vertices are
// treated as the same point when stitching and deduplicating.
const coordTolerance = 1e-9

// Extract walks a route's legs and steps, decodes each step polyline and
// stitches the pieces into one continuous path. When a step starts on the
// previous step's final vertex the duplicate junction point is elided. A
// route with no legs or no step polylines yields an empty sequence.
func (g *generator) Extract(route Route) ([]geo.Point, error) {
	var all []geo.Point
	for li, leg := range route.Legs {
		for si, step := range leg.Steps {
			if step.Polyline == nil || step.Polyline.Points == "" {
				continue
			}
			stepPoints, err := g.geoUtils.DecodePolyline(step.Polyline.Points)
			if err != nil {
				return nil, fmt.Errorf("leg %d step %d: %w", li, si, err)
			}
			if len(all) > 0 && len(stepPoints) > 0 && samePoint(all[len(all)-1], stepPoints[0]) {
				all = append(all, stepPoints[1:]...)
			} else {
				all = append(all, stepPoints...)
			}
		}
	}
	return dedupAdjacent(all), nil
}

// samePoint reports whether two vertices coincide within coordTolerance on
// both axes.
func samePoint(a, b geo.Point) bool {
	return math.Abs(a.Latitude-b.Latitude) < coordTolerance &&
		math.Abs(a.Longitude-b.Longitude) < coordTolerance
}

// dedupAdjacent drops every point that coincides with its immediate
// predecessor. Idempotent: applying it twice equals applying it once.
func dedupAdjacent(points []geo.Point) []geo.Point {
	if len(points) == 0 {
		return points
	}
	dedup := make([]geo.Point, 0, len(points))
	dedup = append(dedup, points[0])
	for _, p := range points[1:] {
		if !samePoint(dedup[len(dedup)-1], p) {
			dedup = append(dedup, p)
		}
	}
	return dedup
}
