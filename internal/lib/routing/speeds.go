package routing

import "fmt"

// SegmentSpeeds computes average speeds for every leg and step of a route,
// in traversal order. A step without its own duration gets a share of the
// leg's duration proportional to its share of the leg's distance. Missing
// per-field data degrades to zero values; it never fails the route.
func (g *generator) SegmentSpeeds(route Route) []SpeedInfo {
	var result []SpeedInfo

	for li, leg := range route.Legs {
		legDistance := 0.0
		if leg.Distance != nil {
			legDistance = leg.Distance.Value
		}
		legDur := 0.0
		if d := legDuration(leg); d != nil {
			legDur = d.Value
		}
		result = append(result, newSpeedInfo(fmt.Sprintf("leg-%d", li), legDistance, legDur))

		for si, step := range leg.Steps {
			stepDistance := 0.0
			if step.Distance != nil {
				stepDistance = step.Distance.Value
			}

			// Steps usually carry a plain duration only; fall back to a
			// distance-proportional share of the leg duration when absent.
			var stepDur float64
			switch {
			case step.DurationInTraffic != nil:
				stepDur = step.DurationInTraffic.Value
			case step.Duration != nil:
				stepDur = step.Duration.Value
			case legDistance > 0:
				stepDur = (stepDistance / legDistance) * legDur
			}

			result = append(result, newSpeedInfo(fmt.Sprintf("leg-%d-step-%d", li, si), stepDistance, stepDur))
		}
	}

	return result
}

// computeSpeedMps computes average speed in m/s, guarding against zero or
// negative durations.
func computeSpeedMps(distanceMeters, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return distanceMeters / durationSeconds
}

func newSpeedInfo(id string, distanceMeters, durationSeconds float64) SpeedInfo {
	mps := computeSpeedMps(distanceMeters, durationSeconds)
	return SpeedInfo{
		ID:                id,
		MetersPerSecond:   mps,
		KilometersPerHour: mps * 3.6,
		DistanceMeters:    distanceMeters,
		DurationSeconds:   durationSeconds,
	}
}
