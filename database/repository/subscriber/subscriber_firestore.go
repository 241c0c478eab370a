package subscriberRepo

import (
	"context"
	"fmt"

	"wishbox/database"
	"wishbox/models"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const subscriberCollection = "newsletter"

// FirestoreSubscriberRepo implements SubscriberRepository on Firestore,
// keyed by email.
type FirestoreSubscriberRepo struct {
	db *database.DB
}

func NewFirestoreSubscriberRepo(db *database.DB) *FirestoreSubscriberRepo {
	return &FirestoreSubscriberRepo{db: db}
}

func (r *FirestoreSubscriberRepo) Get(ctx context.Context, email string) (*models.Subscriber, error) {
	snap, err := r.db.Client.Collection(subscriberCollection).Doc(email).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("subscriber repo: failed to fetch %s: %w", email, err)
	}

	var sub models.Subscriber
	if err := snap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("subscriber repo: failed to decode %s: %w", email, err)
	}
	return &sub, nil
}

func (r *FirestoreSubscriberRepo) Create(ctx context.Context, sub *models.Subscriber) error {
	if _, err := r.db.Client.Collection(subscriberCollection).Doc(sub.Email).Set(ctx, sub); err != nil {
		return fmt.Errorf("subscriber repo: failed to create %s: %w", sub.Email, err)
	}
	return nil
}
