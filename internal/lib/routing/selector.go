package routing

import (
	"fmt"
	"math"
)

// CompareRoutes computes distance/duration metrics for every alternative and
// picks the shortest by total distance. Only a strictly smaller distance
// updates the selection, so the earliest minimum wins ties; if every route's
// distance is unknown (+Inf) the first route is still chosen as a degraded
// but non-fatal outcome.
func (g *generator) CompareRoutes(routes []Route) (RouteComparison, error) {
	if len(routes) == 0 {
		return RouteComparison{}, ErrNoRoutes
	}

	metrics := make([]RouteMetrics, 0, len(routes))
	for i, route := range routes {
		m, err := g.routeMetrics(route, i)
		if err != nil {
			return RouteComparison{}, err
		}
		metrics = append(metrics, m)
	}

	chosen := 0
	minDist := math.Inf(1)
	for _, m := range metrics {
		if m.DistanceMeters < minDist {
			minDist = m.DistanceMeters
			chosen = m.RouteIndex
		}
	}

	return RouteComparison{
		Routes:      metrics,
		ChosenIndex: chosen,
		TotalRoutes: len(metrics),
	}, nil
}

// routeMetrics derives one route's totals. Distance is the sum of leg
// distances when every leg reports one, else the haversine length of the
// overview polyline, else +Inf. Duration sums leg durations, preferring
// duration_in_traffic; any leg without one degrades the whole route's
// duration to UnknownDuration, independent of distance availability.
func (g *generator) routeMetrics(route Route, index int) (RouteMetrics, error) {
	totalDist := 0.0
	totalDur := 0.0
	hasDist := len(route.Legs) > 0
	hasDur := len(route.Legs) > 0

	for _, leg := range route.Legs {
		if leg.Distance != nil {
			totalDist += leg.Distance.Value
		} else {
			hasDist = false
		}
		if d := legDuration(leg); d != nil {
			totalDur += d.Value
		} else {
			hasDur = false
		}
	}

	if !hasDist {
		if route.OverviewPolyline != nil && route.OverviewPolyline.Points != "" {
			points, err := g.geoUtils.DecodePolyline(route.OverviewPolyline.Points)
			if err != nil {
				return RouteMetrics{}, fmt.Errorf("route %d overview polyline: %w", index, err)
			}
			totalDist = g.geoUtils.PolylineLength(points)
		} else {
			totalDist = math.Inf(1)
		}
	}
	if !hasDur {
		totalDur = UnknownDuration
	}

	return RouteMetrics{
		DistanceMeters:  totalDist,
		DurationSeconds: totalDur,
		RouteIndex:      index,
	}, nil
}

// legDuration returns the leg's duration metric, preferring
// duration_in_traffic over plain duration. Nil when the leg reports neither.
func legDuration(leg Leg) *TextValue {
	if leg.DurationInTraffic != nil {
		return leg.DurationInTraffic
	}
	return leg.Duration
}
