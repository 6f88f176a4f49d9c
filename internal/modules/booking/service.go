// README: Booking service implements lifecycle transitions and persistence.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"ridemoto/internal/modules/quote"
	"ridemoto/internal/types"
)

var (
	ErrNotFound             = errors.New("booking not found")
	ErrBadRequest           = errors.New("bad request")
	ErrIncompleteProfile    = errors.New("rider profile incomplete")
	ErrActiveBooking        = errors.New("rider already has an active booking")
	ErrInvalidTransition    = errors.New("invalid booking transition")
	ErrCannotCancelAssigned = errors.New("cannot cancel a booking with an assigned driver")
)

// Store is the document persistence the service depends on. ActiveByRider
// returns (nil, nil) when the rider has no non-terminal booking.
type Store interface {
	Create(ctx context.Context, b *Booking) (types.ID, error)
	Get(ctx context.Context, id types.ID) (*Booking, error)
	ActiveByRider(ctx context.Context, riderID types.ID) (*Booking, error)
	SetDriver(ctx context.Context, id types.ID, driverID types.ID) error
	SetPickedUp(ctx context.Context, id types.ID) error
	SetDroppedOff(ctx context.Context, id types.ID) error
	Delete(ctx context.Context, id types.ID) error
	CompletedByRider(ctx context.Context, riderID types.ID) ([]*Booking, error)
}

// Journaler appends transition events to the audit journal.
type Journaler interface {
	Append(ctx context.Context, e *Event) error
}

type Service struct {
	store     Store
	journal   Journaler
	reconfirm *ReconfirmRegistry
}

// NewService wires the lifecycle service. journal and reconfirm may be nil;
// both are best-effort side channels around the state machine itself.
func NewService(store Store, journal Journaler, reconfirm *ReconfirmRegistry) *Service {
	return &Service{store: store, journal: journal, reconfirm: reconfirm}
}

type CreateCommand struct {
	RiderID      types.ID
	RiderName    string
	RiderPhone   string
	Pickup       types.Point
	PickupLabel  string
	Dropoff      types.Point
	DropoffLabel string
	Quote        quote.FareQuote
}

type AssignCommand struct {
	BookingID types.ID
	DriverID  types.ID
}

// Create validates the rider and opens a booking in Requested state. The
// reconfirmation timer starts immediately; it is the only autonomous actor
// in the lifecycle.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.RiderID == "" || cmd.PickupLabel == "" || cmd.DropoffLabel == "" {
		return "", ErrBadRequest
	}
	if cmd.RiderName == "" || cmd.RiderPhone == "" {
		return "", ErrIncompleteProfile
	}

	active, err := s.store.ActiveByRider(ctx, cmd.RiderID)
	if err != nil {
		return "", err
	}
	if active != nil {
		return "", ErrActiveBooking
	}

	b := &Booking{
		ID:           newID(),
		RiderID:      cmd.RiderID,
		RiderName:    cmd.RiderName,
		RiderPhone:   cmd.RiderPhone,
		Pickup:       cmd.Pickup,
		PickupLabel:  cmd.PickupLabel,
		Dropoff:      cmd.Dropoff,
		DropoffLabel: cmd.DropoffLabel,
		Quote:        cmd.Quote,
		CreatedAt:    time.Now(),
	}
	id, err := s.store.Create(ctx, b)
	if err != nil {
		return "", err
	}

	s.record(ctx, id, StatusNone, StatusRequested, "rider")
	if s.reconfirm != nil {
		s.reconfirm.Arm(id)
	}
	return id, nil
}

// AssignDriver moves a Requested booking to Assigned and cancels the
// reconfirmation timer.
func (s *Service) AssignDriver(ctx context.Context, cmd AssignCommand) error {
	if cmd.DriverID == "" {
		return ErrBadRequest
	}
	b, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status(), StatusAssigned) {
		return ErrInvalidTransition
	}
	if err := s.store.SetDriver(ctx, b.ID, cmd.DriverID); err != nil {
		return err
	}

	if s.reconfirm != nil {
		s.reconfirm.Disarm(b.ID)
	}
	s.record(ctx, b.ID, StatusRequested, StatusAssigned, "driver")
	return nil
}

// MarkPickedUp records the driver collecting the rider.
func (s *Service) MarkPickedUp(ctx context.Context, id types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status(), StatusPickedUp) {
		return ErrInvalidTransition
	}
	if err := s.store.SetPickedUp(ctx, id); err != nil {
		return err
	}
	s.record(ctx, id, StatusAssigned, StatusPickedUp, "driver")
	return nil
}

// MarkDroppedOff completes the trip. Completed is terminal; the rating
// ledger takes over from here.
func (s *Service) MarkDroppedOff(ctx context.Context, id types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status(), StatusCompleted) {
		return ErrInvalidTransition
	}
	if err := s.store.SetDroppedOff(ctx, id); err != nil {
		return err
	}
	s.record(ctx, id, StatusPickedUp, StatusCompleted, "driver")
	return nil
}

// Cancel hard-deletes a booking. Only permitted while no driver holds it.
func (s *Service) Cancel(ctx context.Context, id types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.HasDriver() {
		return ErrCannotCancelAssigned
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.reconfirm != nil {
		s.reconfirm.Disarm(id)
	}
	s.record(ctx, id, StatusRequested, StatusCancelled, "rider")
	return nil
}

// ConfirmInterest is the rider's "yes, keep waiting" answer to the
// reconfirmation prompt. It clears the prompt and changes nothing else.
func (s *Service) ConfirmInterest(ctx context.Context, id types.ID) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if s.reconfirm != nil {
		s.reconfirm.Resolve(id)
	}
	return nil
}

// DeclineInterest is the rider's "no" answer; it cancels the booking.
func (s *Service) DeclineInterest(ctx context.Context, id types.ID) error {
	return s.Cancel(ctx, id)
}

// ReconfirmPending reports whether the booking has an unanswered
// reconfirmation prompt.
func (s *Service) ReconfirmPending(id types.ID) bool {
	if s.reconfirm == nil {
		return false
	}
	return s.reconfirm.Pending(id)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// CurrentForRider returns the rider's non-terminal booking, or ErrNotFound.
func (s *Service) CurrentForRider(ctx context.Context, riderID types.ID) (*Booking, error) {
	b, err := s.store.ActiveByRider(ctx, riderID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// HistoryForRider lists the rider's completed trips, newest first.
func (s *Service) HistoryForRider(ctx context.Context, riderID types.ID) ([]*Booking, error) {
	return s.store.CompletedByRider(ctx, riderID)
}

func (s *Service) record(ctx context.Context, id types.ID, from, to Status, actor string) {
	if s.journal == nil {
		return
	}
	_ = s.journal.Append(ctx, &Event{
		BookingID:  id,
		FromStatus: from,
		ToStatus:   to,
		ActorType:  actor,
		CreatedAt:  time.Now(),
	})
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
