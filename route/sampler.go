package route

import (
	"evroute/geo"
	"evroute/utility"
)

// ErrInvalidInterval is returned when a non-positive sampling interval is requested.
var ErrInvalidInterval = utility.Err("sampling interval must be positive")

// dedupToleranceKm drops consecutive samples closer than this, so that two
// near-identical query centers do not trigger redundant upstream searches.
const dedupToleranceKm = 0.5

// Sample walks the polyline and returns query points spaced roughly intervalKm
// apart along the route. The final route point is always included as the last
// sample. A single-point route yields that point; an empty route yields nil.
func Sample(polyline []geo.Point, intervalKm float64) ([]geo.Point, error) {
	if intervalKm <= 0 {
		return nil, ErrInvalidInterval
	}
	if len(polyline) == 0 {
		return nil, nil
	}
	if len(polyline) == 1 {
		return []geo.Point{polyline[0]}, nil
	}

	// Cumulative along-route distance at every vertex.
	cumulative := make([]float64, len(polyline))
	for i := 1; i < len(polyline); i++ {
		cumulative[i] = cumulative[i-1] + geo.DistanceKm(polyline[i-1], polyline[i])
	}
	total := cumulative[len(cumulative)-1]
	if total == 0 {
		return []geo.Point{polyline[0]}, nil
	}

	var samples []geo.Point
	seg := 1
	for target := 0.0; target < total; target += intervalKm {
		for seg < len(cumulative) && cumulative[seg] < target {
			seg++
		}
		prev := polyline[seg-1]
		next := polyline[seg]
		segLen := cumulative[seg] - cumulative[seg-1]
		fraction := 0.0
		if segLen > 0 {
			fraction = (target - cumulative[seg-1]) / segLen
		}
		samples = append(samples, geo.Interpolate(prev, next, fraction))
	}
	samples = dedupe(samples)

	// The destination is always a sample. If the last grid sample sits inside
	// the tolerance it yields to the destination rather than the other way
	// around, so the final route point stays the last element.
	final := polyline[len(polyline)-1]
	if geo.DistanceKm(samples[len(samples)-1], final) < dedupToleranceKm {
		samples[len(samples)-1] = final
	} else {
		samples = append(samples, final)
	}
	return samples, nil
}

// dedupe keeps the first sample of any cluster of consecutive samples closer
// than the tolerance.
func dedupe(samples []geo.Point) []geo.Point {
	result := samples[:1]
	for _, p := range samples[1:] {
		if geo.DistanceKm(result[len(result)-1], p) >= dedupToleranceKm {
			result = append(result, p)
		}
	}
	return result
}
