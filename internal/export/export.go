package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/dpup/routegen/internal/lib/geo"
)

// coordPrecision is the number of decimal places written to output files.
// Six decimals is roughly 0.1m of latitude, well below polyline resolution.
const coordPrecision = 6

// WriteJSON writes the points as a JSON array of [lat, lon] pairs.
func WriteJSON(w io.Writer, points []geo.Point) error {
	enc := json.NewEncoder(w)
	return enc.Encode(roundedPairs(points))
}

// WriteJS writes the points as a CommonJS module exporting an array of
// [lat, lon] pairs, ready to be required from map frontends.
func WriteJS(w io.Writer, points []geo.Point) error {
	data, err := json.Marshal(roundedPairs(points))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "const routePoints = %s;\n\nmodule.exports = routePoints;\n", data)
	return err
}

// WriteGeoJSON writes the points as a GeoJSON FeatureCollection holding a
// single LineString. GeoJSON positions are [lon, lat].
func WriteGeoJSON(w io.Writer, points []geo.Point) error {
	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{roundCoord(p.Longitude), roundCoord(p.Latitude)}
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(line))

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func roundedPairs(points []geo.Point) [][2]float64 {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = [2]float64{roundCoord(p.Latitude), roundCoord(p.Longitude)}
	}
	return pairs
}

func roundCoord(v float64) float64 {
	scale := math.Pow(10, coordPrecision)
	return math.Round(v*scale) / scale
}
