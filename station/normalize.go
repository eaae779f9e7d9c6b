package station

import (
	"evroute/geo"
	"evroute/ocm"
)

// Normalize maps a raw upstream record into the internal station shape.
// Every nested field may be absent upstream; absence maps to an empty or nil
// field here, never a fault.
func Normalize(raw ocm.POI) Station {
	s := Station{ID: raw.ID}

	if a := raw.AddressInfo; a != nil {
		s.Name = a.Title
		s.Address = a.AddressLine1
		s.Town = a.Town
		if a.Latitude != nil && a.Longitude != nil {
			s.Location = &geo.Point{Lat: *a.Latitude, Lon: *a.Longitude}
		}
		// Point searches reuse the distance the upstream reports for the
		// query center. Route aggregation overwrites this with the distance
		// to the nearest sample afterwards.
		if a.Distance != nil {
			d := *a.Distance
			s.DistanceKm = &d
		}
	}
	if raw.StatusType != nil {
		s.Status = raw.StatusType.Title
	}
	if raw.OperatorInfo != nil {
		s.Operator = raw.OperatorInfo.Title
	}
	s.UsageCost = raw.UsageCost
	if raw.NumberOfPoints != nil {
		s.NumPoints = *raw.NumberOfPoints
	}

	s.Connectors = make([]Connector, 0, len(raw.Connections))
	for _, c := range raw.Connections {
		conn := Connector{PowerKW: c.PowerKW}
		if c.ConnectionType != nil {
			conn.Type = c.ConnectionType.Title
		}
		if c.Level != nil {
			conn.Level = c.Level.Title
		}
		if c.Quantity != nil {
			conn.Quantity = *c.Quantity
		}
		s.Connectors = append(s.Connectors, conn)
	}
	return s
}
