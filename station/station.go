package station

import "evroute/geo"

// Connector is a single charging connection offered at a station.
type Connector struct {
	Type     string   `json:"type,omitempty"`
	PowerKW  *float64 `json:"power_kw"`
	Level    string   `json:"level,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
}

// Station is one physical charging location in the internal shape. Instances
// are built fresh per request by Normalize and never mutated after
// aggregation completes.
type Station struct {
	ID         int         `json:"id"`
	Name       string      `json:"name,omitempty"`
	Address    string      `json:"address,omitempty"`
	Town       string      `json:"town,omitempty"`
	Operator   string      `json:"operator,omitempty"`
	Status     string      `json:"status,omitempty"`
	UsageCost  string      `json:"usage_cost,omitempty"`
	NumPoints  int         `json:"num_points,omitempty"`
	Location   *geo.Point  `json:"location,omitempty"`
	Connectors []Connector `json:"connections"`

	// DistanceKm is the distance to the query center for point searches, or
	// the minimum distance to any route sample for route searches. Nil when
	// the station carries no coordinates.
	DistanceKm *float64 `json:"distance_from_route_km,omitempty"`

	// Score is the route-search ranking value, recomputed per request.
	Score int `json:"score,omitempty"`
}

// MaxPowerKW returns the highest declared connector power. Connectors with
// unknown power count as zero here, so a station cannot claim fast charging
// on an unstated rating.
func (s Station) MaxPowerKW() float64 {
	max := 0.0
	for _, c := range s.Connectors {
		if c.PowerKW != nil && *c.PowerKW > max {
			max = *c.PowerKW
		}
	}
	return max
}
