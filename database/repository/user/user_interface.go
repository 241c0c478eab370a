package userRepo

import (
	"context"
	"time"

	"wishbox/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by document id, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// FindByEmail retrieves every user whose email field matches.
	FindByEmail(ctx context.Context, email string) ([]models.User, error)
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record under user.ID.
	Create(ctx context.Context, user *models.User) error
	// SetVerified marks an existing user record email-verified.
	SetVerified(ctx context.Context, id string, at time.Time) error
	// Merge writes the given fields into the document at id, preserving
	// existing fields that are not overwritten.
	Merge(ctx context.Context, id string, fields map[string]interface{}) error
	// SetPhotoURL updates the profile photo URL and updatedAt timestamp.
	SetPhotoURL(ctx context.Context, id, photoURL string, at time.Time) error
	// HasWishlistProduct reports whether the user's wishlist sub-collection
	// contains an entry for the product.
	HasWishlistProduct(ctx context.Context, userID, productID string) (bool, error)
}
