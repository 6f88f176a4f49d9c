// README: Quote service turns two points into a priced, time-estimated preview.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"ridemoto/internal/geo"
	"ridemoto/internal/maps"
	"ridemoto/internal/modules/pricing"
	"ridemoto/internal/types"
)

// RouteData is the remote routing lookup the service depends on.
// *maps.RouteService satisfies it in production.
type RouteData interface {
	TravelEstimate(ctx context.Context, origin, destination types.Point) (maps.Estimate, error)
	RoutePolyline(ctx context.Context, origin, destination types.Point) (string, error)
}

type Service struct {
	routes   RouteData
	pricing  *pricing.Service
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService builds a quote service. cache may be nil, which disables the
// short-lived quote cache.
func NewService(routes RouteData, pricingSvc *pricing.Service, cache *redis.Client) *Service {
	return &Service{
		routes:   routes,
		pricing:  pricingSvc,
		cache:    cache,
		cacheTTL: 30 * time.Second,
	}
}

// Quote asks the distance matrix for the trip and prices it. When the
// lookup has no usable element it returns the zeroed quote with nil error
// so the caller can still render the quote screen.
func (s *Service) Quote(ctx context.Context, origin, dropoff types.Point) (FareQuote, error) {
	key := cacheKey(origin, dropoff)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var q FareQuote
			if json.Unmarshal(raw, &q) == nil {
				return q, nil
			}
		}
	}

	est, err := s.routes.TravelEstimate(ctx, origin, dropoff)
	if errors.Is(err, maps.ErrNoRoute) {
		return s.zeroQuote(), nil
	}
	if err != nil {
		return FareQuote{}, err
	}

	q := FareQuote{
		DistanceText:   est.DistanceText,
		DurationText:   formatDuration(est.Duration),
		Price:          s.pricing.FareFor(est.DistanceMeters),
		DistanceMeters: est.DistanceMeters,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(q); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.cacheTTL).Err()
		}
	}
	return q, nil
}

// Route fetches the drivable path between the points as decoded polyline
// coordinates. No route yields an empty path, not an error.
func (s *Service) Route(ctx context.Context, origin, dropoff types.Point) ([]types.Point, error) {
	encoded, err := s.routes.RoutePolyline(ctx, origin, dropoff)
	if errors.Is(err, maps.ErrNoRoute) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return geo.DecodePolyline(encoded)
}

func (s *Service) zeroQuote() FareQuote {
	return FareQuote{
		DistanceText: "0 km",
		DurationText: "0 min",
		Price:        types.Money{Amount: 0, Currency: s.pricing.Rate().Currency},
	}
}

func formatDuration(d time.Duration) string {
	mins := int(math.Round(d.Minutes()))
	if mins < 1 {
		mins = 1
	}
	if mins >= 60 {
		return fmt.Sprintf("%d hr %d min", mins/60, mins%60)
	}
	return fmt.Sprintf("%d min", mins)
}

// cacheKey rounds coordinates to 1e-5 degrees, the same precision the
// polyline codec uses, so nearby re-taps hit the cache.
func cacheKey(origin, dropoff types.Point) string {
	return fmt.Sprintf("quote:%.5f,%.5f|%.5f,%.5f", origin.Lat, origin.Lng, dropoff.Lat, dropoff.Lng)
}
