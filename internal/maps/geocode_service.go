package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"ridemoto/internal/types"
)

// ErrNoAddress is returned when reverse geocoding yields no results for a point.
var ErrNoAddress = errors.New("no address found")

// Address is a simplified reverse-geocoding result.
type Address struct {
	Formatted  string
	Components []AddressComponent
}

// AddressComponent carries the type tags Google attaches to each component
// (e.g. "route", "locality", "water").
type AddressComponent struct {
	LongName string
	Types    []string
}

// HasType reports whether any component of the address carries the given tag.
func (a Address) HasType(tag string) bool {
	for _, c := range a.Components {
		for _, t := range c.Types {
			if t == tag {
				return true
			}
		}
	}
	return false
}

// GeocodeService handles interactions with the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a new GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// ReverseGeocode resolves a coordinate to its best formatted address. The
// first result is used, matching what the map screen showed the rider.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, p types.Point) (Address, error) {
	r := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
	}

	results, err := s.client.ReverseGeocode(ctx, r)
	if err != nil {
		return Address{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return Address{}, ErrNoAddress
	}

	best := results[0]
	addr := Address{Formatted: best.FormattedAddress}
	for _, c := range best.AddressComponents {
		addr.Components = append(addr.Components, AddressComponent{
			LongName: c.LongName,
			Types:    c.Types,
		})
	}
	return addr, nil
}
