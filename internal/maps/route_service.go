package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"ridemoto/internal/types"
)

// ErrNoRoute is returned when the remote lookup has no usable element for
// the requested origin/destination pair. Callers decide whether that is a
// failure; the quote flow deliberately treats it as a zero result.
var ErrNoRoute = errors.New("no route found")

// Estimate is the distance-matrix result for a single origin/destination pair.
type Estimate struct {
	DistanceMeters float64
	DistanceText   string
	Duration       time.Duration
}

// RouteService handles interactions with the Google Maps routing APIs.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// TravelEstimate returns driving distance and duration between two points
// via the Distance Matrix API. Returns ErrNoRoute when the response carries
// no usable element.
func (s *RouteService) TravelEstimate(ctx context.Context, origin, destination types.Point) (Estimate, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{latLngParam(origin)},
		Destinations: []string{latLngParam(destination)},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return Estimate{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return Estimate{}, ErrNoRoute
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return Estimate{}, ErrNoRoute
	}

	return Estimate{
		DistanceMeters: float64(el.Distance.Meters),
		DistanceText:   el.Distance.HumanReadable,
		Duration:       el.Duration,
	}, nil
}

// RoutePolyline returns the first route's encoded overview polyline from
// the Directions API. Returns ErrNoRoute when no route exists.
func (s *RouteService) RoutePolyline(ctx context.Context, origin, destination types.Point) (string, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLngParam(origin),
		Destination: latLngParam(destination),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return "", fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 {
		return "", ErrNoRoute
	}
	return routes[0].OverviewPolyline.Points, nil
}

func latLngParam(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
