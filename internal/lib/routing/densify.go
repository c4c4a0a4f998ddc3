package routing

import (
	"math"

	"github.com/dpup/routegen/internal/lib/geo"
)

// Densify inserts synthetic points along each segment of the path so that
// consecutive output points are separated by at most intervalMeters along
// the great-circle between them. Original vertices always survive as a
// subsequence; synthetic points lie strictly inside their segment, so none
// ever coincides with or overshoots the segment endpoint. A single-point
// input is returned unchanged.
func (g *generator) Densify(points []geo.Point, intervalMeters float64) ([]geo.Point, error) {
	if intervalMeters <= 0 {
		return nil, ErrInvalidInterval
	}
	if len(points) == 0 {
		return nil, nil
	}

	out := make([]geo.Point, 0, len(points))
	out = append(out, points[0])
	for i := 0; i < len(points)-1; i++ {
		a := points[i]
		b := points[i+1]

		segDist, err := g.geoUtils.PointToPoint(a, b)
		if err != nil {
			return nil, err
		}
		if segDist <= 0 {
			out = append(out, b)
			continue
		}

		bearing, err := g.geoUtils.InitialBearing(a, b)
		if err != nil {
			return nil, err
		}

		steps := int(math.Floor(segDist / intervalMeters))
		for s := 1; s <= steps; s++ {
			d := float64(s) * intervalMeters
			if d >= segDist {
				break
			}
			p, err := g.geoUtils.DestinationPoint(a, bearing, d)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		out = append(out, b)
	}

	return dedupAdjacent(out), nil
}
