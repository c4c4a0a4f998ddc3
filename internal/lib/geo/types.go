package geo

// Point represents a geographic coordinate
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// GeoUtils interface defines the geodesy and polyline utilities the routing
// pipeline is built on. All methods are pure: identical inputs always produce
// identical outputs, so they are safe to call from concurrent pipelines.
type GeoUtils interface {
	// Calculate great-circle distance between two points in meters
	PointToPoint(p1, p2 Point) (float64, error)

	// Forward azimuth from one point to another, degrees in [0, 360)
	InitialBearing(from, to Point) (float64, error)

	// Solve the direct geodetic problem: where do you end up starting at
	// origin and travelling distanceMeters along bearingDeg
	DestinationPoint(origin Point, bearingDeg, distanceMeters float64) (Point, error)

	// Sum of consecutive great-circle distances along a point sequence
	PolylineLength(points []Point) float64

	// Decode Google polyline string to point sequence
	DecodePolyline(encoded string) ([]Point, error)

	// Encode a point sequence back to a Google polyline string
	EncodePolyline(points []Point) string
}

// NewGeoUtils is implemented in geo.go
