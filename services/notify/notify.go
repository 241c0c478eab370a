package notify

import (
	"context"
	"errors"
	"fmt"
	"math"

	userRepo "wishbox/database/repository/user"
	"wishbox/models"
	"wishbox/services/mailer"
	"wishbox/utils"

	"go.uber.org/zap"
)

// ErrNotifyFailed covers collaborator failures while locating recipients.
var ErrNotifyFailed = errors.New("failed to send price drop notifications")

// Result reports the outcome of a price-drop broadcast.
type Result struct {
	Notified   int
	Candidates int
}

// NotifyService fans out price-drop emails to wishlist holders.
type NotifyService interface {
	NotifyPriceDrop(ctx context.Context, drop models.PriceDrop) (Result, error)
}

// DefaultNotifyService is the production NotifyService.
type DefaultNotifyService struct {
	Users  userRepo.UserRepository
	Mailer mailer.Mailer
}

type recipient struct {
	email string
	name  string
}

func (s *DefaultNotifyService) NotifyPriceDrop(ctx context.Context, drop models.PriceDrop) (Result, error) {
	logger := utils.GetLogger()

	// A price that did not drop is a valid, silent call.
	if drop.NewPrice >= drop.OldPrice {
		return Result{}, nil
	}

	if s.Users == nil {
		return Result{}, ErrNotifyFailed
	}

	users, err := s.Users.GetAll(ctx)
	if err != nil {
		logger.Error("NotifyPriceDrop: user scan failed", zap.Error(err))
		return Result{}, ErrNotifyFailed
	}

	var recipients []recipient
	for i := range users {
		u := &users[i]
		if u.Email == "" {
			continue
		}
		has, err := s.Users.HasWishlistProduct(ctx, u.ID, drop.ProductID)
		if err != nil {
			logger.Error("NotifyPriceDrop: wishlist lookup failed",
				zap.String("userID", u.ID), zap.Error(err))
			return Result{}, ErrNotifyFailed
		}
		if !has {
			continue
		}
		name := u.Name
		if name == "" {
			name = "Valued Customer"
		}
		recipients = append(recipients, recipient{email: u.Email, name: name})
	}

	savings := drop.OldPrice - drop.NewPrice
	savingsPercent := int(math.Round(100 * savings / drop.OldPrice))

	// Best-effort broadcast, one recipient at a time. A failed send is
	// logged and the rest of the set still goes out.
	res := Result{Candidates: len(recipients)}
	for _, r := range recipients {
		body, err := mailer.Render(mailer.TemplatePriceDrop, mailer.PriceDropEmail{
			Name:           r.name,
			ProductName:    drop.ProductName,
			ProductImage:   drop.ProductImage,
			OldPrice:       drop.OldPrice,
			NewPrice:       drop.NewPrice,
			Savings:        savings,
			SavingsPercent: savingsPercent,
		})
		if err != nil {
			logger.Error("NotifyPriceDrop: template render failed", zap.Error(err))
			continue
		}
		subject := fmt.Sprintf("Price drop: %s is now %d%% off", drop.ProductName, savingsPercent)
		if err := s.Mailer.Send(r.email, subject, body); err != nil {
			logger.Warn("NotifyPriceDrop: send failed",
				zap.String("email", r.email), zap.Error(err))
			continue
		}
		res.Notified++
	}

	logger.Sugar().Infof("Price drop for %s: notified %d of %d wishlist users",
		drop.ProductID, res.Notified, res.Candidates)
	return res, nil
}
