package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evroute/geo"
	"evroute/utility"
)

// ErrNoRoute is returned when the routing engine finds no drivable route
// between the requested points.
var ErrNoRoute = utility.Err("no route found")

const defaultTimeout = 15 * time.Second

// Client queries an OSRM routing server for driving routes.
type Client struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

func New(apiURL string) *Client {
	return &Client{
		url:     apiURL,
		timeout: defaultTimeout,
		client:  &http.Client{},
	}
}

// Route is a drivable route between two points.
type Route struct {
	Points      []geo.Point
	DistanceKm  float64
	DurationMin float64
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute returns the fastest driving route from origin to destination.
func (c *Client) GetRoute(ctx context.Context, origin, destination geo.Point) (*Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.url, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var parsed osrmResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, ErrNoRoute
	}

	best := parsed.Routes[0]
	points := make([]geo.Point, 0, len(best.Geometry.Coordinates))
	for _, c := range best.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		points = append(points, geo.Point{Lat: c[1], Lon: c[0]})
	}
	return &Route{
		Points:      points,
		DistanceKm:  best.Distance / 1000,
		DurationMin: best.Duration / 60,
	}, nil
}
