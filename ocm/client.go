package ocm

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
)

const defaultTimeout = 15 * time.Second

// Client queries the Open Charge Map POI API.
type Client struct {
	client  *http.Client
	url     string
	key     string
	timeout time.Duration
}

func New(apiURL, apiKey string) *Client {
	return &Client{
		url:     apiURL,
		key:     apiKey,
		timeout: defaultTimeout,
		client:  &http.Client{},
	}
}

// Search returns raw station records around the given center, closest first
// as the upstream orders them.
func (c *Client) Search(ctx context.Context, center geo.Point, radiusKm float64, maxResults int) ([]POI, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(center.Lon, 'f', -1, 64))
	params.Set("distance", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	params.Set("distanceunit", "KM")
	params.Set("maxresults", strconv.Itoa(maxResults))
	return c.poi(ctx, params)
}

// SearchCity returns raw station records for a city name, resolved by the
// upstream's own address matching.
func (c *Client) SearchCity(ctx context.Context, city string, maxResults int) ([]POI, error) {
	params := url.Values{}
	if city != "" {
		params.Set("address", city)
	}
	params.Set("maxresults", strconv.Itoa(maxResults))
	return c.poi(ctx, params)
}

func (c *Client) poi(ctx context.Context, params url.Values) ([]POI, error) {
	params.Set("output", "json")
	params.Set("compact", "true")
	params.Set("verbose", "false")
	params.Set("key", c.key)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
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
	var records []POI
	if err = json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return records, nil
}
