package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"evroute/geo"
	"evroute/utility"
)

// ErrNotFound is returned when the geocoder has no match for a place name.
var ErrNotFound = utility.Err("place not found")

const defaultTimeout = 10 * time.Second

// Client resolves place names through a Nominatim search endpoint.
type Client struct {
	client    *http.Client
	url       string
	userAgent string
	timeout   time.Duration
}

func New(apiURL, userAgent string) *Client {
	return &Client{
		url:       apiURL,
		userAgent: userAgent,
		timeout:   defaultTimeout,
		client:    &http.Client{},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve converts a place name to coordinates, taking the best match.
func (c *Client) Resolve(ctx context.Context, place string) (geo.Point, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("sending request: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return geo.Point{}, fmt.Errorf("reading response body: %w", err)
	}

	var results []searchResult
	if err = json.Unmarshal(body, &results); err != nil {
		return geo.Point{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(results) == 0 {
		return geo.Point{}, ErrNotFound
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("parsing longitude: %w", err)
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}
