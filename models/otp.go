package models

import "time"

// OTPRecord is the one-time passcode document stored per email address.
// The document id is the email, so at most one live record exists per address.
type OTPRecord struct {
	Code      string    `firestore:"otp" json:"-"`
	Email     string    `firestore:"email" json:"email"`
	FullName  string    `firestore:"fullName,omitempty" json:"fullName,omitempty"`
	UID       string    `firestore:"uid,omitempty" json:"uid,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt" json:"expiresAt"`
	Attempts  int       `firestore:"attempts" json:"attempts"`
}

// Expired reports whether the record is past its expiry at the given instant.
func (r *OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
