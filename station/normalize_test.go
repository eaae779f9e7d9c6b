package station

import (
	"testing"

	"evroute/ocm"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeFullRecord(t *testing.T) {
	qty := 2
	points := 4
	raw := ocm.POI{
		ID: 1001,
		AddressInfo: &ocm.Address{
			Title:        "Metro Mall Charging",
			AddressLine1: "12 Ring Road",
			Town:         "Delhi",
			Latitude:     f64(28.61),
			Longitude:    f64(77.21),
		},
		Connections: []ocm.Connection{
			{
				ConnectionType: &ocm.ConnectionType{Title: "CCS (Type 2)"},
				PowerKW:        f64(60),
				Level:          &ocm.Level{Title: "Level 3: High (Over 40kW)"},
				Quantity:       &qty,
			},
		},
		StatusType:     &ocm.StatusType{Title: "Operational"},
		OperatorInfo:   &ocm.Operator{Title: "Tata Power"},
		UsageCost:      "₹18/kWh",
		NumberOfPoints: &points,
	}

	s := Normalize(raw)
	if s.ID != 1001 || s.Name != "Metro Mall Charging" || s.Town != "Delhi" {
		t.Errorf("unexpected station fields: %+v", s)
	}
	if s.Location == nil || s.Location.Lat != 28.61 {
		t.Errorf("location not mapped: %+v", s.Location)
	}
	if s.Operator != "Tata Power" || s.Status != "Operational" || s.NumPoints != 4 {
		t.Errorf("unexpected metadata: %+v", s)
	}
	if len(s.Connectors) != 1 {
		t.Fatalf("expected 1 connector, got %d", len(s.Connectors))
	}
	c := s.Connectors[0]
	if c.Type != "CCS (Type 2)" || c.PowerKW == nil || *c.PowerKW != 60 || c.Quantity != 2 {
		t.Errorf("unexpected connector: %+v", c)
	}
}

func TestNormalizeSparseRecord(t *testing.T) {
	// Everything optional is absent; normalization must not fault.
	s := Normalize(ocm.POI{ID: 7})
	if s.ID != 7 {
		t.Errorf("id = %d, want 7", s.ID)
	}
	if s.Location != nil {
		t.Errorf("expected nil location, got %+v", s.Location)
	}
	if s.Name != "" || s.Status != "" || s.Operator != "" {
		t.Errorf("expected empty display fields: %+v", s)
	}
	if len(s.Connectors) != 0 {
		t.Errorf("expected no connectors, got %+v", s.Connectors)
	}
}

func TestNormalizePartialCoordinates(t *testing.T) {
	// A latitude without a longitude is not a usable location.
	raw := ocm.POI{
		ID:          8,
		AddressInfo: &ocm.Address{Title: "Half-known", Latitude: f64(28.0)},
	}
	if s := Normalize(raw); s.Location != nil {
		t.Errorf("expected nil location, got %+v", s.Location)
	}
}

func TestMaxPowerKWUnknownIsZero(t *testing.T) {
	s := Station{Connectors: []Connector{{Type: "CHAdeMO"}, {Type: "Type 2", PowerKW: f64(22)}}}
	if got := s.MaxPowerKW(); got != 22 {
		t.Errorf("MaxPowerKW = %v, want 22", got)
	}
	none := Station{Connectors: []Connector{{Type: "CHAdeMO"}}}
	if got := none.MaxPowerKW(); got != 0 {
		t.Errorf("MaxPowerKW with no ratings = %v, want 0", got)
	}
}
