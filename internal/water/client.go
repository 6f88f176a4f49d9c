// Package water queries the isitwater RapidAPI endpoint to decide whether a
// coordinate sits on a body of water.
package water

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ridemoto/internal/types"
)

const defaultEndpoint = "https://isitwater-com.p.rapidapi.com/"

// Client performs water lookups against the isitwater HTTP API.
type Client struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		Endpoint: defaultEndpoint,
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: 5 * time.Second},
	}
}

// IsWater reports whether the point is on water. Any transport or decode
// problem is returned as an error; the caller must not treat a failed
// lookup as land.
func (c *Client) IsWater(ctx context.Context, p types.Point) (bool, error) {
	url := fmt.Sprintf("%s?latitude=%f&longitude=%f", c.Endpoint, p.Lat, p.Lng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("X-RapidAPI-Key", c.APIKey)
	req.Header.Set("X-RapidAPI-Host", "isitwater-com.p.rapidapi.com")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("water lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("water lookup: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Water bool `json:"water"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("water lookup: %w", err)
	}
	return out.Water, nil
}
