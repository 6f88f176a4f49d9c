// README: Rating persistence over the booking documents.
package rating

import (
	"context"

	"cloud.google.com/go/firestore"

	"ridemoto/internal/types"
)

const bookCollection = "book"

// FirestoreStore writes the rating field onto the booking document. The
// service has already checked the write-once precondition.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) SetRating(ctx context.Context, id types.ID, stars int) error {
	_, err := s.client.Collection(bookCollection).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "rating", Value: stars},
	})
	return err
}
