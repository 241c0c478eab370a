package otp

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable signals the verification database is not initialized.
var ErrServiceUnavailable = errors.New("verification service is currently unavailable")

// ErrNotFound signals no code is stored for the email.
var ErrNotFound = errors.New("no verification code found for this email, please request a new one")

// ErrExpired signals the stored code is past its expiry; the record is gone.
var ErrExpired = errors.New("verification code has expired, please request a new one")

// ErrAttemptsExhausted signals too many failed attempts; the record is gone.
var ErrAttemptsExhausted = errors.New("too many failed attempts, please request a new code")

// ErrVerificationFailed covers unexpected collaborator failures during verify.
var ErrVerificationFailed = errors.New("verification failed, please try again")

// ErrSendFailed signals the code was stored but the email could not be sent.
var ErrSendFailed = errors.New("failed to send verification email, please try again")

// InvalidCodeError signals a wrong code; the record stays, minus one attempt.
type InvalidCodeError struct {
	Remaining int
}

func (e InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code, %d attempt(s) remaining", e.Remaining)
}
