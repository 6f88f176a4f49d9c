// README: Pricing service computes fare amounts from trip distance.
package pricing

import "ridemoto/internal/types"

// Service prices trips. It is pure and deterministic; rates are fixed at
// construction and safe for concurrent use.
type Service struct {
	rate Rate
}

func NewService(rate Rate) *Service {
	return &Service{rate: rate}
}

// FareFor returns the fare for a trip of the given length in meters.
// Trips at or under the free-distance threshold pay the minimum fare;
// longer trips pay distance * PerKm on top of the minimum. The result is
// truncated, not rounded, matching the fare the booking screens display.
func (s *Service) FareFor(distanceMeters float64) types.Money {
	distanceKm := distanceMeters / 1000

	amount := s.rate.MinimumFare
	if distanceKm > s.rate.FreeKm {
		amount = int64(distanceKm*float64(s.rate.PerKm) + float64(s.rate.MinimumFare))
	}

	return types.Money{Amount: amount, Currency: s.rate.Currency}
}

// Rate exposes the constants for display surfaces such as the fare matrix.
func (s *Service) Rate() Rate {
	return s.rate
}
