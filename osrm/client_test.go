package osrm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"evroute/geo"
)

func TestGetRoute(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("geometries"); got != "geojson" {
			t.Errorf("geometries = %q, want geojson", got)
		}
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 70500.0,
				"duration": 4800.0,
				"geometry": {"coordinates": [[77.21, 28.61], [77.10, 28.90], [77.00, 29.20]]}
			}]
		}`))
	}))
	defer upstream.Close()

	c := New(upstream.URL)
	route, err := c.GetRoute(context.Background(), geo.Point{Lat: 28.61, Lon: 77.21}, geo.Point{Lat: 29.20, Lon: 77.00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.DistanceKm != 70.5 {
		t.Errorf("distance = %v km, want 70.5", route.DistanceKm)
	}
	if route.DurationMin != 80 {
		t.Errorf("duration = %v min, want 80", route.DurationMin)
	}
	if len(route.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(route.Points))
	}
	// geojson order is lon,lat; the client must swap
	if route.Points[0].Lat != 28.61 || route.Points[0].Lon != 77.21 {
		t.Errorf("first point = %+v, want {28.61 77.21}", route.Points[0])
	}
}

func TestGetRouteNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer upstream.Close()

	c := New(upstream.URL)
	if _, err := c.GetRoute(context.Background(), geo.Point{}, geo.Point{Lat: 1}); !errors.Is(err, ErrNoRoute) {
		t.Errorf("error = %v, want ErrNoRoute", err)
	}
}

func TestGetRouteUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	c := New(upstream.URL)
	_, err := c.GetRoute(context.Background(), geo.Point{}, geo.Point{Lat: 1})
	if err == nil || errors.Is(err, ErrNoRoute) {
		t.Errorf("expected transport error, got %v", err)
	}
}
