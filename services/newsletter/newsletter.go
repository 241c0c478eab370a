package newsletter

import (
	"context"
	"errors"
	"regexp"
	"time"

	subscriberRepo "wishbox/database/repository/subscriber"
	"wishbox/models"
	"wishbox/services/mailer"
	"wishbox/utils"

	"go.uber.org/zap"
)

// ErrInvalidEmail signals the address does not look like local@domain.tld.
var ErrInvalidEmail = errors.New("please provide a valid email address")

// ErrSubscribeFailed covers collaborator failures during subscription.
var ErrSubscribeFailed = errors.New("failed to subscribe, please try again")

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewsletterService manages newsletter subscriptions.
type NewsletterService interface {
	// Subscribe records the email and sends a confirmation. The returned
	// flag is true when the email was already subscribed, in which case
	// nothing is written and no email is sent.
	Subscribe(ctx context.Context, email string) (already bool, err error)
}

// DefaultNewsletterService is the production NewsletterService.
type DefaultNewsletterService struct {
	Subs   subscriberRepo.SubscriberRepository
	Mailer mailer.Mailer
}

func (s *DefaultNewsletterService) Subscribe(ctx context.Context, email string) (bool, error) {
	logger := utils.GetLogger()

	if !emailShape.MatchString(email) {
		return false, ErrInvalidEmail
	}

	if s.Subs == nil {
		return false, ErrSubscribeFailed
	}

	existing, err := s.Subs.Get(ctx, email)
	if err != nil {
		logger.Error("Subscribe: lookup failed", zap.String("email", email), zap.Error(err))
		return false, ErrSubscribeFailed
	}
	if existing != nil {
		return true, nil
	}

	sub := &models.Subscriber{
		Email:        email,
		SubscribedAt: time.Now(),
		Active:       true,
	}
	if err := s.Subs.Create(ctx, sub); err != nil {
		logger.Error("Subscribe: failed to store subscriber", zap.String("email", email), zap.Error(err))
		return false, ErrSubscribeFailed
	}

	body, err := mailer.Render(mailer.TemplateWelcome, mailer.WelcomeEmail{Email: email})
	if err != nil {
		logger.Error("Subscribe: template render failed", zap.Error(err))
		return false, ErrSubscribeFailed
	}
	if err := s.Mailer.Send(email, "Welcome to the newsletter", body); err != nil {
		// The subscriber record stays; only the confirmation failed.
		logger.Error("Subscribe: confirmation send failed", zap.String("email", email), zap.Error(err))
		return false, ErrSubscribeFailed
	}

	logger.Sugar().Infof("Subscribed %s to the newsletter", email)
	return false, nil
}
