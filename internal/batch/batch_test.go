package batch

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dpup/routegen/internal/cache"
	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/lib/routing"
	"github.com/dpup/routegen/internal/services"
)

type stubDirectionsClient struct {
	routes []routing.Route
	err    error
}

func (s *stubDirectionsClient) Directions(ctx context.Context, origin, destination geo.Point) ([]routing.Route, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.routes, nil
}

func TestParseJobs(t *testing.T) {
	input := strings.Join([]string{
		"# comment line",
		"",
		"38.067287,-120.539016,38.129800,-120.456101,10,route.json,route.js",
		"not,enough,fields",
		"91.0,0,0,0.01,10,bad.json,bad.js",
		"0,0,0,0.01,-5,bad.json,bad.js",
		"0,0,0,0.01,500, spaced.json , spaced.js ",
	}, "\n")

	jobs, err := ParseJobs(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, jobs, 2, "Only the two well-formed lines should survive")

	assert.Equal(t, 38.067287, jobs[0].Origin.Latitude)
	assert.Equal(t, 10.0, jobs[0].IntervalMeters)
	assert.Equal(t, "route.json", jobs[0].JSONPath)
	assert.Equal(t, 3, jobs[0].Line)
	assert.NotEmpty(t, jobs[0].ID)

	assert.Equal(t, "spaced.json", jobs[1].JSONPath)
	assert.Equal(t, "spaced.js", jobs[1].JSPath)
	assert.NotEqual(t, jobs[0].ID, jobs[1].ID)
}

func TestParseJobs_Empty(t *testing.T) {
	jobs, err := ParseJobs(strings.NewReader("# only comments\n\n"), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestRunner_WritesOutputFiles(t *testing.T) {
	encoded := geo.NewGeoUtils().EncodePolyline([]geo.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 0.01},
	})
	client := &stubDirectionsClient{routes: []routing.Route{{
		Legs: []routing.Leg{{
			Distance: &routing.TextValue{Value: 1112},
			Duration: &routing.TextValue{Value: 300},
			Steps:    []routing.Step{{Polyline: &routing.EncodedPolyline{Points: encoded}}},
		}},
	}}}
	svc := services.NewRoutesService(client, cache.NewCache(), time.Minute, 10, zap.NewNop())
	runner := NewRunner(svc, zap.NewNop())

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	jsPath := filepath.Join(dir, "out.js")

	jobs := []Job{{
		ID:             "test-job",
		Origin:         geo.Point{Latitude: 0, Longitude: 0},
		Destination:    geo.Point{Latitude: 0, Longitude: 0.01},
		IntervalMeters: 500,
		JSONPath:       jsonPath,
		JSPath:         jsPath,
	}}

	succeeded, failed := runner.Run(context.Background(), jobs)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, failed)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var pairs [][2]float64
	require.NoError(t, json.Unmarshal(data, &pairs))
	assert.Len(t, pairs, 4, "500m spacing over ~1112m yields 4 points")

	jsData, err := os.ReadFile(jsPath)
	require.NoError(t, err)
	assert.Contains(t, string(jsData), "module.exports = routePoints;")
}

func TestRunner_CountsFailures(t *testing.T) {
	client := &stubDirectionsClient{err: errors.New("upstream down")}
	svc := services.NewRoutesService(client, cache.NewCache(), time.Minute, 10, zap.NewNop())
	runner := NewRunner(svc, zap.NewNop())

	jobs := []Job{{
		ID:             "doomed",
		Origin:         geo.Point{Latitude: 0, Longitude: 0},
		Destination:    geo.Point{Latitude: 0, Longitude: 0.01},
		IntervalMeters: 10,
		JSONPath:       filepath.Join(t.TempDir(), "never.json"),
		JSPath:         filepath.Join(t.TempDir(), "never.js"),
	}}

	succeeded, failed := runner.Run(context.Background(), jobs)
	assert.Equal(t, 0, succeeded)
	assert.Equal(t, 1, failed)
}
