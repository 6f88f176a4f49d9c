package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"ridemoto/internal/types"
)

// Place represents a simplified destination search result.
type Place struct {
	Name    string
	Address string
	PlaceID string
	Location types.Point
}

// PlacesService handles destination text search against the Google Places API.
type PlacesService struct {
	client *maps.Client

	// search bias: results are constrained to the service area so riders
	// cannot pick destinations the geofence would reject anyway.
	center   types.Point
	radiusM  uint
}

// NewPlacesService creates a new PlacesService with the given API key,
// biased to a circle around the service-area center.
func NewPlacesService(apiKey string, center types.Point, radiusKm float64) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{
		client:  client,
		center:  center,
		radiusM: uint(radiusKm * 1000),
	}, nil
}

// SearchDestinations searches for places matching the query inside the
// service area, capped at the top 5 results.
func (s *PlacesService) SearchDestinations(ctx context.Context, query string) ([]Place, error) {
	r := &maps.TextSearchRequest{
		Query:    query,
		Location: &maps.LatLng{Lat: s.center.Lat, Lng: s.center.Lng},
		Radius:   s.radiusM,
		Language: "en",
		Region:   "PH",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	for _, result := range resp.Results {
		results = append(results, Place{
			Name:    result.Name,
			Address: result.FormattedAddress,
			PlaceID: result.PlaceID,
			Location: types.Point{
				Lat: result.Geometry.Location.Lat,
				Lng: result.Geometry.Location.Lng,
			},
		})
		if len(results) >= 5 {
			break
		}
	}
	return results, nil
}
