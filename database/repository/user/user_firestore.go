package userRepo

import (
	"context"
	"fmt"
	"time"

	"wishbox/database"
	"wishbox/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection    = "users"
	wishlistCollection = "wishlist"
)

// FirestoreUserRepo implements UserRepository on Firestore.
type FirestoreUserRepo struct {
	db *database.DB
}

func NewFirestoreUserRepo(db *database.DB) *FirestoreUserRepo {
	return &FirestoreUserRepo{db: db}
}

func (r *FirestoreUserRepo) users() *firestore.CollectionRef {
	return r.db.Client.Collection(usersCollection)
}

func (r *FirestoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	snap, err := r.users().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user repo: failed to fetch user %s: %w", id, err)
	}
	return decode(snap)
}

func (r *FirestoreUserRepo) FindByEmail(ctx context.Context, email string) ([]models.User, error) {
	iter := r.users().Where("email", "==", email).Documents(ctx)
	defer iter.Stop()

	var out []models.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("user repo: email query failed: %w", err)
		}
		u, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *FirestoreUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	iter := r.users().Documents(ctx)
	defer iter.Stop()

	var out []models.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("user repo: scan failed: %w", err)
		}
		u, err := decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *FirestoreUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, err := r.users().Doc(user.ID).Set(ctx, user); err != nil {
		return fmt.Errorf("user repo: failed to create user %s: %w", user.ID, err)
	}
	return nil
}

func (r *FirestoreUserRepo) SetVerified(ctx context.Context, id string, at time.Time) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "emailVerified", Value: true},
		{Path: "verifiedAt", Value: at},
	})
	if err != nil {
		return fmt.Errorf("user repo: failed to mark user %s verified: %w", id, err)
	}
	return nil
}

func (r *FirestoreUserRepo) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, err := r.users().Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("user repo: failed to merge into user %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreUserRepo) SetPhotoURL(ctx context.Context, id, photoURL string, at time.Time) error {
	_, err := r.users().Doc(id).Set(ctx, map[string]interface{}{
		"photoURL":  photoURL,
		"updatedAt": at,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("user repo: failed to update photo URL for %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreUserRepo) HasWishlistProduct(ctx context.Context, userID, productID string) (bool, error) {
	iter := r.users().Doc(userID).Collection(wishlistCollection).
		Where("productId", "==", productID).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("user repo: wishlist query failed for %s: %w", userID, err)
	}
	return true, nil
}

func decode(snap *firestore.DocumentSnapshot) (*models.User, error) {
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("user repo: failed to decode user %s: %w", snap.Ref.ID, err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
