// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"ridemoto/internal/modules/quote"
	"ridemoto/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusRequested Status = "requested"
	StatusAssigned  Status = "assigned"
	StatusPickedUp  Status = "picked_up"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking is the persistent record of a single rider's trip. Status is not
// stored directly; it is derived from driverId and the two progress flags,
// exactly as the booking documents encode it.
type Booking struct {
	ID           types.ID        `firestore:"-" json:"id"`
	RiderID      types.ID        `firestore:"userId" json:"rider_id"`
	RiderName    string          `firestore:"userName" json:"rider_name"`
	RiderPhone   string          `firestore:"userPhoneNumber" json:"rider_phone"`
	Pickup       types.Point     `firestore:"pickupCoords" json:"pickup"`
	PickupLabel  string          `firestore:"pickupLocation" json:"pickup_label"`
	Dropoff      types.Point     `firestore:"dropoffCoords" json:"dropoff"`
	DropoffLabel string          `firestore:"dropoffLocation" json:"dropoff_label"`
	Quote        quote.FareQuote `firestore:"quote" json:"quote"`
	DriverID     types.ID        `firestore:"driverId" json:"driver_id,omitempty"`
	IsPickedUp   bool            `firestore:"isPickUp" json:"is_picked_up"`
	IsDroppedOff bool            `firestore:"isDropoff" json:"is_dropped_off"`
	Rating       *int            `firestore:"rating" json:"rating,omitempty"`
	CreatedAt    time.Time       `firestore:"timestamp" json:"created_at"`
}

// HasDriver reports whether a driver holds the booking. An empty driverId
// means unassigned, matching the document encoding.
func (b *Booking) HasDriver() bool {
	return b.DriverID != ""
}

// Status derives the lifecycle state from the stored flags. The flags are
// ordered: isDropoff implies isPickUp implies driverId present.
func (b *Booking) Status() Status {
	switch {
	case b.IsDroppedOff:
		return StatusCompleted
	case b.IsPickedUp:
		return StatusPickedUp
	case b.HasDriver():
		return StatusAssigned
	default:
		return StatusRequested
	}
}

// Event records a single state transition for the journal.
type Event struct {
	BookingID  types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	CreatedAt  time.Time
}

// AllowedTransitions represents the booking state flow as code. Cancelled
// is only reachable before a driver is assigned, and cancellation removes
// the record rather than storing a terminal state.
var AllowedTransitions = map[Status][]Status{
	StatusRequested: {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusPickedUp},
	StatusPickedUp:  {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
