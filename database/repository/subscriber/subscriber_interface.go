package subscriberRepo

import (
	"context"

	"wishbox/models"
)

// SubscriberRepository defines data access for newsletter subscriptions.
type SubscriberRepository interface {
	// Get retrieves the subscriber record for an email, or nil when absent.
	Get(ctx context.Context, email string) (*models.Subscriber, error)
	// Create inserts a new subscriber record keyed by its email.
	Create(ctx context.Context, sub *models.Subscriber) error
}
