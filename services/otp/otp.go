package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	otpRepo "wishbox/database/repository/otp"
	userRepo "wishbox/database/repository/user"
	"wishbox/models"
	"wishbox/services/mailer"
	"wishbox/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	codeTTL     = 10 * time.Minute
	maxAttempts = 5
)

// DefaultOTPService is the production OTPService backed by the document
// store and the mail relay.
type DefaultOTPService struct {
	Repo   otpRepo.OTPRepository
	Users  userRepo.UserRepository
	Mailer mailer.Mailer
}

// generateCode returns a uniformly random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// RequestCode creates (or replaces) the OTP record for the email and mails
// the code. A replacement always resets the attempt counter and the expiry.
func (s *DefaultOTPService) RequestCode(ctx context.Context, email, fullName, uid string) error {
	logger := utils.GetLogger()

	if s.Repo == nil {
		return ErrServiceUnavailable
	}

	code, err := generateCode()
	if err != nil {
		logger.Error("RequestCode: code generation failed", zap.Error(err))
		return ErrVerificationFailed
	}

	now := time.Now()
	rec := &models.OTPRecord{
		Code:      code,
		Email:     email,
		FullName:  fullName,
		UID:       uid,
		CreatedAt: now,
		ExpiresAt: now.Add(codeTTL),
		Attempts:  0,
	}
	if err := s.Repo.Upsert(ctx, rec); err != nil {
		logger.Error("RequestCode: failed to store record", zap.String("email", email), zap.Error(err))
		return ErrVerificationFailed
	}

	name := fullName
	if name == "" {
		name = "there"
	}
	body, err := mailer.Render(mailer.TemplateOTP, mailer.OTPEmail{
		Name:          name,
		Code:          code,
		ExpiryMinutes: int(codeTTL.Minutes()),
	})
	if err != nil {
		logger.Error("RequestCode: template render failed", zap.Error(err))
		return ErrSendFailed
	}
	if err := s.Mailer.Send(email, "Your verification code", body); err != nil {
		// The record stays; a retry overwrites it with a fresh code and expiry.
		logger.Error("RequestCode: mail send failed", zap.String("email", email), zap.Error(err))
		return ErrSendFailed
	}

	logger.Sugar().Infof("Sent verification code to %s (expires in %v)", email, codeTTL)
	return nil
}

// evaluate reports whether the record can still accept a verify attempt at
// the given instant. When it cannot, the record is deleted and the terminal
// reason is returned.
func (s *DefaultOTPService) evaluate(ctx context.Context, rec *models.OTPRecord, now time.Time) error {
	if rec.Expired(now) {
		if err := s.Repo.Delete(ctx, rec.Email); err != nil {
			utils.GetLogger().Error("evaluate: failed to delete expired record", zap.Error(err))
		}
		return ErrExpired
	}
	if rec.Attempts >= maxAttempts {
		if err := s.Repo.Delete(ctx, rec.Email); err != nil {
			utils.GetLogger().Error("evaluate: failed to delete exhausted record", zap.Error(err))
		}
		return ErrAttemptsExhausted
	}
	return nil
}

// VerifyCode checks the submitted code. The attempt counter is incremented
// before the comparison, and the expiry/exhaustion checks run before the
// increment, so a record already sitting at the attempt limit is destroyed
// on the next call regardless of code correctness.
//
// The check/increment/delete sequence is not serialized per email; two
// concurrent attempts against the same record can interleave.
func (s *DefaultOTPService) VerifyCode(ctx context.Context, email, code, uid string) error {
	logger := utils.GetLogger()

	if s.Repo == nil {
		return ErrServiceUnavailable
	}

	rec, err := s.Repo.Get(ctx, email)
	if err != nil {
		logger.Error("VerifyCode: lookup failed", zap.String("email", email), zap.Error(err))
		return ErrVerificationFailed
	}
	if rec == nil {
		return ErrNotFound
	}

	now := time.Now()
	if err := s.evaluate(ctx, rec, now); err != nil {
		return err
	}

	rec.Attempts++
	if err := s.Repo.SetAttempts(ctx, email, rec.Attempts); err != nil {
		logger.Error("VerifyCode: failed to persist attempt count", zap.String("email", email), zap.Error(err))
		return ErrVerificationFailed
	}

	if rec.Code != code {
		return InvalidCodeError{Remaining: maxAttempts - rec.Attempts}
	}

	if err := s.reconcile(ctx, rec, uid, now); err != nil {
		logger.Error("VerifyCode: reconciliation failed", zap.String("email", email), zap.Error(err))
		return ErrVerificationFailed
	}

	if err := s.Repo.Delete(ctx, email); err != nil {
		logger.Error("VerifyCode: failed to delete consumed record", zap.String("email", email), zap.Error(err))
		return ErrVerificationFailed
	}

	logger.Sugar().Infof("Verified email %s", email)
	return nil
}

// reconcile locates or creates the canonical user record and marks it
// verified. The record's stored uid wins over the uid passed on the verify
// call. Partial writes are not rolled back.
func (s *DefaultOTPService) reconcile(ctx context.Context, rec *models.OTPRecord, callUID string, now time.Time) error {
	target := rec.UID
	if target == "" {
		target = callUID
	}

	// 1. Direct hit on the uid-keyed document.
	if target != "" {
		u, err := s.Users.GetByID(ctx, target)
		if err != nil {
			return err
		}
		if u != nil {
			return s.Users.SetVerified(ctx, target, now)
		}
	}

	// 2. Fall back to matching by email. Every match is marked verified;
	// matches living under a foreign document id are additionally merged
	// into the uid-keyed document so both copies agree.
	matches, err := s.Users.FindByEmail(ctx, rec.Email)
	if err != nil {
		return err
	}
	for i := range matches {
		m := &matches[i]
		if err := s.Users.SetVerified(ctx, m.ID, now); err != nil {
			return err
		}
		if target != "" && m.ID != target {
			fields := m.MergeFields()
			fields["uid"] = target
			fields["emailVerified"] = true
			fields["verifiedAt"] = now
			if err := s.Users.Merge(ctx, target, fields); err != nil {
				return err
			}
		}
	}
	if len(matches) > 0 {
		return nil
	}

	// 3. No record anywhere; create one.
	id := target
	if id == "" {
		id = uuid.NewString()
	}
	name := rec.FullName
	if name == "" {
		name = "User"
	}
	verifiedAt := now
	return s.Users.Create(ctx, &models.User{
		ID:            id,
		UID:           id,
		Email:         rec.Email,
		Name:          name,
		Provider:      "email",
		Role:          "user",
		EmailVerified: true,
		VerifiedAt:    &verifiedAt,
		CreatedAt:     now,
	})
}
