package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"
)

// Earth's mean radius in meters. The whole pipeline assumes a spherical
// earth with this exact radius so distances stay reproducible across runs.
const earthRadius = 6371000

// ErrInvalidPolyline wraps any polyline decode failure (truncated
// continuation sequence, invalid byte, out-of-range coordinate).
var ErrInvalidPolyline = errors.New("invalid polyline")

// geoUtils implements the GeoUtils interface
type geoUtils struct{}

// NewGeoUtils creates a new GeoUtils implementation
func NewGeoUtils() GeoUtils {
	return &geoUtils{}
}

// PointToPoint calculates great-circle distance between two points using Haversine formula
func (g *geoUtils) PointToPoint(p1, p2 Point) (float64, error) {
	if !isValidCoordinate(p1) || !isValidCoordinate(p2) {
		return 0, errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")
	}

	// If points are the same, distance is 0
	if p1.Latitude == p2.Latitude && p1.Longitude == p2.Longitude {
		return 0, nil
	}

	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	dlat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dlon := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c, nil
}

// InitialBearing calculates the forward azimuth from one point to another.
// Result is normalized into [0, 360) degrees.
func (g *geoUtils) InitialBearing(from, to Point) (float64, error) {
	if !isValidCoordinate(from) || !isValidCoordinate(to) {
		return 0, errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")
	}

	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dlon := (to.Longitude - from.Longitude) * math.Pi / 180

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	theta := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(theta+360, 360), nil
}

// DestinationPoint solves the direct geodetic problem on the sphere: the
// point reached by travelling distanceMeters from origin along bearingDeg.
// Longitude is normalized into [-180, 180].
func (g *geoUtils) DestinationPoint(origin Point, bearingDeg, distanceMeters float64) (Point, error) {
	if !isValidCoordinate(origin) {
		return Point{}, errors.New("invalid origin coordinates")
	}

	delta := distanceMeters / earthRadius
	theta := bearingDeg * math.Pi / 180
	lat1 := origin.Latitude * math.Pi / 180
	lon1 := origin.Longitude * math.Pi / 180

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	lonDeg := lon2 * 180 / math.Pi
	lonDeg = math.Mod(lonDeg+540, 360) - 180

	return Point{Latitude: lat2 * 180 / math.Pi, Longitude: lonDeg}, nil
}

// PolylineLength sums consecutive great-circle distances along the sequence.
// Invalid segments contribute nothing rather than failing the whole sum.
func (g *geoUtils) PolylineLength(points []Point) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		d, err := g.PointToPoint(points[i], points[i+1])
		if err != nil {
			continue
		}
		total += d
	}
	return total
}

// DecodePolyline decodes Google polyline string to point sequence
func (g *geoUtils) DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: encoded polyline string is empty", ErrInvalidPolyline)
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolyline, err)
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{
			Latitude:  coord[0],
			Longitude: coord[1],
		}

		if !isValidCoordinate(points[i]) {
			return nil, fmt.Errorf("%w: decoded coordinates out of range", ErrInvalidPolyline)
		}
	}

	return points, nil
}

// EncodePolyline encodes a point sequence as a Google polyline string.
// Coordinates are quantized to 1e-5 degrees, so decoding the result yields
// the inputs rounded to 5 decimal places.
func (g *geoUtils) EncodePolyline(points []Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(polyline.EncodeCoords(coords))
}

// NewPoint creates a Point from latitude and longitude values with validation
func NewPoint(latitude, longitude float64) (Point, error) {
	point := Point{Latitude: latitude, Longitude: longitude}
	if !isValidCoordinate(point) {
		return Point{}, errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")
	}
	return point, nil
}

// isValidCoordinate validates latitude and longitude values
func isValidCoordinate(point Point) bool {
	return point.Latitude >= -90 && point.Latitude <= 90 &&
		point.Longitude >= -180 && point.Longitude <= 180
}
