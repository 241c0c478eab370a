package otpRepo

import (
	"context"
	"fmt"

	"wishbox/database"
	"wishbox/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const otpCollection = "emailOtps"

// FirestoreOTPRepo implements OTPRepository on Firestore, keyed by email.
type FirestoreOTPRepo struct {
	db *database.DB
}

func NewFirestoreOTPRepo(db *database.DB) *FirestoreOTPRepo {
	return &FirestoreOTPRepo{db: db}
}

func (r *FirestoreOTPRepo) doc(email string) *firestore.DocumentRef {
	return r.db.Client.Collection(otpCollection).Doc(email)
}

func (r *FirestoreOTPRepo) Upsert(ctx context.Context, rec *models.OTPRecord) error {
	if _, err := r.doc(rec.Email).Set(ctx, rec); err != nil {
		return fmt.Errorf("otp repo: failed to store record for %s: %w", rec.Email, err)
	}
	return nil
}

func (r *FirestoreOTPRepo) Get(ctx context.Context, email string) (*models.OTPRecord, error) {
	snap, err := r.doc(email).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("otp repo: failed to fetch record for %s: %w", email, err)
	}

	var rec models.OTPRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("otp repo: failed to decode record for %s: %w", email, err)
	}
	return &rec, nil
}

func (r *FirestoreOTPRepo) SetAttempts(ctx context.Context, email string, attempts int) error {
	_, err := r.doc(email).Update(ctx, []firestore.Update{
		{Path: "attempts", Value: attempts},
	})
	if err != nil {
		return fmt.Errorf("otp repo: failed to update attempts for %s: %w", email, err)
	}
	return nil
}

func (r *FirestoreOTPRepo) Delete(ctx context.Context, email string) error {
	if _, err := r.doc(email).Delete(ctx); err != nil {
		return fmt.Errorf("otp repo: failed to delete record for %s: %w", email, err)
	}
	return nil
}
