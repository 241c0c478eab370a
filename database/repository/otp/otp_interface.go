package otpRepo

import (
	"context"

	"wishbox/models"
)

// OTPRepository defines data access for one-time passcode records.
type OTPRepository interface {
	// Upsert overwrites the record stored for the record's email.
	Upsert(ctx context.Context, rec *models.OTPRecord) error
	// Get retrieves the record for an email, or nil when absent.
	Get(ctx context.Context, email string) (*models.OTPRecord, error)
	// SetAttempts persists a new attempt count for an email's record.
	SetAttempts(ctx context.Context, email string, attempts int) error
	// Delete removes the record for an email.
	Delete(ctx context.Context, email string) error
}
