package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dpup/routegen/internal/cache"
	"github.com/dpup/routegen/internal/lib/geo"
	"github.com/dpup/routegen/internal/lib/routing"
)

// DirectionsClient abstracts the upstream directions provider
type DirectionsClient interface {
	Directions(ctx context.Context, origin, destination geo.Point) ([]routing.Route, error)
}

// RouteRequest describes one origin/destination pair to generate geometry
// for. IntervalMeters of 0 falls back to the service default.
type RouteRequest struct {
	Origin         geo.Point
	Destination    geo.Point
	IntervalMeters float64
}

// GeneratedRoute is the result of the full pipeline for one request.
type GeneratedRoute struct {
	Points         []geo.Point          `json:"points"`
	ChosenIndex    int                  `json:"chosen_index"`
	Metrics        routing.RouteMetrics `json:"metrics"`
	IntervalMeters float64              `json:"interval_meters"`
}

// RoutesService orchestrates the directions client, cache and geometry
// pipeline. Each request works on its own structures, so the service is
// safe for concurrent use.
type RoutesService struct {
	client          DirectionsClient
	cache           *cache.Cache
	generator       routing.Generator
	cacheTTL        time.Duration
	defaultInterval float64
	logger          *zap.Logger
}

// NewRoutesService creates a new RoutesService
func NewRoutesService(client DirectionsClient, cacheInstance *cache.Cache, cacheTTL time.Duration, defaultInterval float64, logger *zap.Logger) *RoutesService {
	return &RoutesService{
		client:          client,
		cache:           cacheInstance,
		generator:       routing.NewGenerator(),
		cacheTTL:        cacheTTL,
		defaultInterval: defaultInterval,
		logger:          logger,
	}
}

// GenerateRoute fetches directions, picks the shortest alternative and
// returns its densified geometry.
func (s *RoutesService) GenerateRoute(ctx context.Context, req RouteRequest) (*GeneratedRoute, error) {
	interval := req.IntervalMeters
	if interval == 0 {
		interval = s.defaultInterval
	}

	routes, err := s.fetchRoutes(ctx, req.Origin, req.Destination)
	if err != nil {
		return nil, err
	}

	comparison, err := s.generator.CompareRoutes(routes)
	if err != nil {
		return nil, err
	}
	chosen := comparison.ChosenIndex

	points, err := s.generator.DensifiedRouteGeometry(routes[chosen], interval)
	if err != nil {
		return nil, fmt.Errorf("route %d: %w", chosen, err)
	}

	s.logger.Info("generated route geometry",
		zap.Int("chosen_index", chosen),
		zap.Int("alternatives", comparison.TotalRoutes),
		zap.Float64("interval_meters", interval),
		zap.Int("points", len(points)),
	)

	return &GeneratedRoute{
		Points:         points,
		ChosenIndex:    chosen,
		Metrics:        comparison.Routes[chosen],
		IntervalMeters: interval,
	}, nil
}

// CompareRoutes returns metrics for every alternative between the two
// points, in API order, plus the index of the shortest.
func (s *RoutesService) CompareRoutes(ctx context.Context, origin, destination geo.Point) (routing.RouteComparison, error) {
	routes, err := s.fetchRoutes(ctx, origin, destination)
	if err != nil {
		return routing.RouteComparison{}, err
	}
	return s.generator.CompareRoutes(routes)
}

// SegmentSpeeds returns per-leg and per-step average speeds for the
// shortest alternative between the two points.
func (s *RoutesService) SegmentSpeeds(ctx context.Context, origin, destination geo.Point) ([]routing.SpeedInfo, error) {
	routes, err := s.fetchRoutes(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	comparison, err := s.generator.CompareRoutes(routes)
	if err != nil {
		return nil, err
	}
	return s.generator.SegmentSpeeds(routes[comparison.ChosenIndex]), nil
}

// fetchRoutes returns the cached directions payload when fresh, refreshing
// from the API otherwise. When the refresh fails a not-too-stale cached
// payload is served as a degraded fallback.
func (s *RoutesService) fetchRoutes(ctx context.Context, origin, destination geo.Point) ([]routing.Route, error) {
	key := directionsKey(origin, destination)

	var cached []routing.Route
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	routes, err := s.client.Directions(ctx, origin, destination)
	if err != nil {
		// Serve stale data if it is not too old to be useful
		var stale []routing.Route
		if entry, exists, cacheErr := s.cache.GetWithMetadata(key, &stale); cacheErr == nil && exists && !s.cache.IsVeryStale(key) {
			s.logger.Warn("directions refresh failed, serving stale cache",
				zap.String("key", key),
				zap.Time("cached_at", entry.CreatedAt),
				zap.Error(err),
			)
			return stale, nil
		}
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}

	if err := s.cache.Set(key, routes, s.cacheTTL, "directions"); err != nil {
		s.logger.Warn("failed to cache directions", zap.String("key", key), zap.Error(err))
	}

	return routes, nil
}

func directionsKey(origin, destination geo.Point) string {
	return "directions:" +
		strconv.FormatFloat(origin.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(origin.Longitude, 'f', -1, 64) + "->" +
		strconv.FormatFloat(destination.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(destination.Longitude, 'f', -1, 64)
}
