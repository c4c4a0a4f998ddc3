package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/routegen/internal/lib/geo"
)

func TestDensifiedRouteGeometry(t *testing.T) {
	gen := NewGenerator()

	a := geo.Point{Latitude: 0, Longitude: 0}
	b := geo.Point{Latitude: 0, Longitude: 0.01}

	route := Route{Legs: []Leg{{Steps: []Step{{Polyline: encode(t, a, b)}}}}}

	// ~1112m at 500m interval: start, two synthetic, end
	points, err := gen.DensifiedRouteGeometry(route, 500)
	require.NoError(t, err)
	assert.Len(t, points, 4)
	assert.Equal(t, a, points[0])
	assert.Equal(t, b, points[len(points)-1])
}

func TestDensifiedRouteGeometry_TooShort(t *testing.T) {
	gen := NewGenerator()

	// No geometry at all
	_, err := gen.DensifiedRouteGeometry(Route{}, 10)
	assert.ErrorIs(t, err, ErrGeometryTooShort)

	// A single vertex is not densifiable either
	p := geo.Point{Latitude: 38.5, Longitude: -120.2}
	route := Route{Legs: []Leg{{Steps: []Step{{Polyline: encode(t, p)}}}}}
	_, err = gen.DensifiedRouteGeometry(route, 10)
	assert.ErrorIs(t, err, ErrGeometryTooShort)
}

func TestDensifiedRouteGeometry_PropagatesDecodeError(t *testing.T) {
	gen := NewGenerator()

	route := Route{Legs: []Leg{{Steps: []Step{
		{Polyline: &EncodedPolyline{Points: "_p~iF~ps|U_"}},
	}}}}

	_, err := gen.DensifiedRouteGeometry(route, 10)
	assert.ErrorIs(t, err, geo.ErrInvalidPolyline)
}
