// README: Rating service enforces the write-once trip rating rules.
package rating

import (
	"context"
	"errors"

	"ridemoto/internal/modules/booking"
	"ridemoto/internal/types"
)

var (
	ErrOutOfRange   = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated = errors.New("booking already rated")
	ErrNotCompleted = errors.New("booking is not completed")
)

const (
	MinStars = 1
	MaxStars = 5
)

// BookingReader reads the booking being rated.
type BookingReader interface {
	Get(ctx context.Context, id types.ID) (*booking.Booking, error)
}

// Store persists the rating onto the booking record.
type Store interface {
	SetRating(ctx context.Context, id types.ID, stars int) error
}

type Service struct {
	bookings BookingReader
	store    Store
}

func NewService(bookings BookingReader, store Store) *Service {
	return &Service{bookings: bookings, store: store}
}

// Rate records the rider's rating for a completed trip. A booking can be
// rated exactly once, and only after dropoff.
func (s *Service) Rate(ctx context.Context, id types.ID, stars int) error {
	if stars < MinStars || stars > MaxStars {
		return ErrOutOfRange
	}
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status() != booking.StatusCompleted {
		return ErrNotCompleted
	}
	if b.Rating != nil {
		return ErrAlreadyRated
	}
	return s.store.SetRating(ctx, id, stars)
}
