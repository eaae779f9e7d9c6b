package station

import (
	"math"
	"sort"
	"strings"
)

// Two ranking policies coexist. Point searches order purely by distance to
// the query center. Route searches order by a multi-factor usefulness score,
// since raw distance alone is a poor guide when planning charging stops.

// SortByDistance orders stations by ascending distance. Stations without a
// known distance sort last; equal distances fall back to id order so the
// output is deterministic.
func SortByDistance(stations []Station) []Station {
	sorted := make([]Station, len(stations))
	copy(sorted, stations)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := distanceOrInf(sorted[i]), distanceOrInf(sorted[j])
		if di != dj {
			return di < dj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// RankByScore computes each station's usefulness score and orders by
// descending score. Ties break by ascending distance, then by id.
func RankByScore(stations []Station) []Station {
	ranked := make([]Station, len(stations))
	copy(ranked, stations)
	for i := range ranked {
		ranked[i].Score = Score(ranked[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		di, dj := distanceOrInf(ranked[i]), distanceOrInf(ranked[j])
		if di != dj {
			return di < dj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// Score is the additive route-search usefulness heuristic: proximity to the
// route, operational status, best connector power, and connector count.
func Score(s Station) int {
	score := proximityScore(s)
	score += statusScore(s.Status)
	score += powerScore(s.MaxPowerKW())

	if n := len(s.Connectors); n > 0 {
		score += min(5*n, 25)
	}
	return score
}

func proximityScore(s Station) int {
	if s.DistanceKm == nil {
		return 40
	}
	switch d := *s.DistanceKm; {
	case d <= 2:
		return 100
	case d <= 5:
		return 80
	case d <= 10:
		return 60
	default:
		return 40
	}
}

func statusScore(status string) int {
	switch {
	case containsFold(status, "operational"):
		return 50
	case containsFold(status, "planned"), containsFold(status, "construction"):
		return 20
	default:
		return 10
	}
}

func powerScore(kw float64) int {
	switch {
	case kw >= 100:
		return 40
	case kw >= 50:
		return 30
	case kw >= 22:
		return 20
	default:
		return 10
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func distanceOrInf(s Station) float64 {
	if s.DistanceKm == nil {
		return math.Inf(1)
	}
	return *s.DistanceKm
}
