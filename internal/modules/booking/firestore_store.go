// README: Booking store backed by the Cloud Firestore "book" collection.
package booking

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ridemoto/internal/types"
)

// bookCollection is the collection name the mobile clients already use.
const bookCollection = "book"

type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(id types.ID) *firestore.DocumentRef {
	return s.client.Collection(bookCollection).Doc(string(id))
}

func (s *FirestoreStore) Create(ctx context.Context, b *Booking) (types.ID, error) {
	if _, err := s.doc(b.ID).Create(ctx, b); err != nil {
		return "", fmt.Errorf("creating booking: %w", err)
	}
	return b.ID, nil
}

func (s *FirestoreStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	snap, err := s.doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading booking: %w", err)
	}
	return decodeBooking(snap)
}

// ActiveByRider finds the rider's single non-terminal booking. Cancelled
// bookings are deleted and completed ones carry isDropoff, so "active"
// reduces to a not-yet-dropped-off document.
func (s *FirestoreStore) ActiveByRider(ctx context.Context, riderID types.ID) (*Booking, error) {
	iter := s.client.Collection(bookCollection).
		Where("userId", "==", string(riderID)).
		Where("isDropoff", "==", false).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying active booking: %w", err)
	}
	return decodeBooking(snap)
}

func (s *FirestoreStore) SetDriver(ctx context.Context, id types.ID, driverID types.ID) error {
	_, err := s.doc(id).Update(ctx, []firestore.Update{
		{Path: "driverId", Value: string(driverID)},
	})
	return err
}

func (s *FirestoreStore) SetPickedUp(ctx context.Context, id types.ID) error {
	_, err := s.doc(id).Update(ctx, []firestore.Update{
		{Path: "isPickUp", Value: true},
	})
	return err
}

func (s *FirestoreStore) SetDroppedOff(ctx context.Context, id types.ID) error {
	_, err := s.doc(id).Update(ctx, []firestore.Update{
		{Path: "isDropoff", Value: true},
	})
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, id types.ID) error {
	_, err := s.doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) CompletedByRider(ctx context.Context, riderID types.ID) ([]*Booking, error) {
	iter := s.client.Collection(bookCollection).
		Where("userId", "==", string(riderID)).
		Where("isDropoff", "==", true).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var out []*Booking
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying booking history: %w", err)
		}
		b, err := decodeBooking(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeBooking(snap *firestore.DocumentSnapshot) (*Booking, error) {
	var b Booking
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("decoding booking %s: %w", snap.Ref.ID, err)
	}
	b.ID = types.ID(snap.Ref.ID)
	return &b, nil
}
