// README: Fare quote snapshot produced before a booking exists.
package quote

import "ridemoto/internal/types"

// FareQuote is the priced, time-estimated preview of a trip. It is produced
// once per request and never mutated; a booking stores a copy of the quote
// it was created from.
type FareQuote struct {
	DistanceText   string      `json:"distance_text" firestore:"rideDistance"`
	DurationText   string      `json:"duration_text" firestore:"rideTime"`
	Price          types.Money `json:"price" firestore:"ridePrice"`
	DistanceMeters float64     `json:"distance_meters" firestore:"rideDistanceMeters"`
}
