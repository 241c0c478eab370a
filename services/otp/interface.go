package otp

import "context"

// OTPService owns the lifecycle of email verification codes: creation,
// expiry, attempt-limited verification, and the user-record reconciliation
// that follows a successful check.
type OTPService interface {
	// RequestCode generates a fresh 6-digit code for the email, persists it
	// (replacing any prior record) and sends it to the address.
	RequestCode(ctx context.Context, email, fullName, uid string) error
	// VerifyCode checks a submitted code against the stored record and, on
	// success, marks the canonical user record email-verified.
	VerifyCode(ctx context.Context, email, code, uid string) error
}
