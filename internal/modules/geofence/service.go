// README: Geofence validator decides whether a dropoff point is bookable.
package geofence

import (
	"context"
	"errors"
	"fmt"

	"ridemoto/internal/geo"
	"ridemoto/internal/maps"
	"ridemoto/internal/types"
)

var (
	// ErrOutsideServiceArea rejects points beyond the service radius.
	ErrOutsideServiceArea = errors.New("location outside service area")
	// ErrOnWater rejects points on a body of water.
	ErrOnWater = errors.New("location on water")
	// ErrAddressLookupFailed means the reverse geocode could not confirm
	// the point; booking must not proceed on an unconfirmed address.
	ErrAddressLookupFailed = errors.New("address lookup failed")
)

// Config is the process-wide service-area definition. It is read-only after
// construction and safe for concurrent use.
type Config struct {
	Center   types.Point
	RadiusKm float64
}

// DefaultConfig covers the launch service area.
func DefaultConfig() Config {
	return Config{
		Center:   types.Point{Lat: 16.0439, Lng: 120.3331},
		RadiusKm: 20,
	}
}

// WaterLookup answers whether a point is on water.
type WaterLookup interface {
	IsWater(ctx context.Context, p types.Point) (bool, error)
}

// Geocoder resolves a point to an address with component type tags.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, p types.Point) (maps.Address, error)
}

// Validator runs the dropoff acceptance checks.
type Validator struct {
	cfg      Config
	water    WaterLookup
	geocoder Geocoder
}

func NewValidator(cfg Config, water WaterLookup, geocoder Geocoder) *Validator {
	return &Validator{cfg: cfg, water: water, geocoder: geocoder}
}

// Config returns the service-area definition.
func (v *Validator) Config() Config {
	return v.cfg
}

// WithinServiceArea reports whether the point lies inside the service
// circle. Purely local, no network.
func (v *Validator) WithinServiceArea(p types.Point) bool {
	return geo.HaversineKm(p, v.cfg.Center) <= v.cfg.RadiusKm
}

// CheckDropoff validates a candidate dropoff point and returns its
// formatted address on success. Checks run cheapest first and
// short-circuit: service-area containment, then the water-body lookup,
// then the water-tagged-address check. Both remote signals must say "land"
// for acceptance; a lookup failure propagates instead of passing.
func (v *Validator) CheckDropoff(ctx context.Context, p types.Point) (string, error) {
	if !v.WithinServiceArea(p) {
		return "", ErrOutsideServiceArea
	}

	onWater, err := v.water.IsWater(ctx, p)
	if err != nil {
		return "", fmt.Errorf("water lookup: %w", err)
	}
	if onWater {
		return "", ErrOnWater
	}

	addr, err := v.geocoder.ReverseGeocode(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAddressLookupFailed, err)
	}
	if addr.Formatted == "" {
		return "", ErrAddressLookupFailed
	}
	if addr.HasType("water") {
		return "", ErrOnWater
	}

	return addr.Formatted, nil
}
