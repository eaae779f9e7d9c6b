package station

import (
	"context"
	"sync"

	"evroute/geo"
	"evroute/ocm"
)

// SearchFunc queries an upstream provider for raw station records around a
// center point. One of these is injected into Aggregate so the aggregation
// logic stays independent of the concrete provider.
type SearchFunc func(ctx context.Context, center geo.Point, radiusKm float64, maxResults int) ([]ocm.POI, error)

// Aggregate runs one station search per sample point, fanning the queries
// out concurrently, and merges the results by station id. The first sample
// to discover a station wins; later discoveries of the same id are ignored.
// A failed sample query contributes no stations and does not abort the rest.
//
// DistanceKm on each merged station is the minimum distance from the station
// to any sample point, computed in a separate pass once every query has
// resolved, so a station discovered by a far sample still reports its true
// distance to the closest one.
func Aggregate(ctx context.Context, samples []geo.Point, radiusKm float64, maxPerSample int, search SearchFunc) map[int]Station {
	merged := make(map[int]Station)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, sample := range samples {
		wg.Add(1)
		go func(center geo.Point) {
			defer wg.Done()
			records, err := search(ctx, center, radiusKm, maxPerSample)
			if err != nil {
				// Partial failure: this sample yields nothing.
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, raw := range records {
				if _, seen := merged[raw.ID]; seen {
					continue
				}
				merged[raw.ID] = Normalize(raw)
			}
		}(sample)
	}
	wg.Wait()

	for id, s := range merged {
		if s.Location == nil {
			// Without coordinates the upstream-reported distance is no
			// guide to route proximity; such stations rank last.
			s.DistanceKm = nil
			merged[id] = s
			continue
		}
		min := -1.0
		for _, sample := range samples {
			if d := geo.DistanceKm(*s.Location, sample); min < 0 || d < min {
				min = d
			}
		}
		if min >= 0 {
			d := min
			s.DistanceKm = &d
			merged[id] = s
		}
	}
	return merged
}
