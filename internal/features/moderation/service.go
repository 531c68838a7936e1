package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/users"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	"github.com/xyz-asif/awaaz-admin/internal/realtime"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.uber.org/zap"
)

type StrikeStore interface {
	Increment(ctx context.Context, email string, at time.Time) (int, error)
	Get(ctx context.Context, email string) (*Strike, error)
	Reset(ctx context.Context, email string) error
}

// UserBlocker deactivates a user only while they are still active
type UserBlocker interface {
	BlockActiveByEmail(ctx context.Context, email, by string, at time.Time) (*users.User, bool, error)
}

// Notifier records the notice sent to an auto-blocked user
type Notifier interface {
	NotifyAutoBlock(ctx context.Context, user *users.User, count int) error
}

type Publisher interface {
	Publish(eventType string, data any)
}

type Service struct {
	strikes   StrikeStore
	users     UserBlocker
	notifier  Notifier
	publisher Publisher
	threshold int
	now       func() time.Time
	log       *zap.Logger
}

func NewService(strikes StrikeStore, blocker UserBlocker, notifier Notifier, publisher Publisher, threshold int) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Service{
		strikes:   strikes,
		users:     blocker,
		notifier:  notifier,
		publisher: publisher,
		threshold: threshold,
		now:       time.Now,
		log:       logger.Named("moderation"),
	}
}

func (s *Service) Threshold() int { return s.threshold }

// RecordReport counts one report against email and applies the auto-block
// rule once the count reaches the threshold. Only the caller whose
// conditional update flips the user from active gets Blocked=true, and only
// that caller creates the notification.
func (s *Service) RecordReport(ctx context.Context, email string) (Outcome, error) {
	key := validator.NormalizeEmail(email)
	if key == "" {
		return Outcome{}, fmt.Errorf("target email is empty: %w", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	count, err := s.strikes.Increment(ctx, key, now)
	if err != nil {
		return Outcome{}, fmt.Errorf("increment strikes: %w", err)
	}

	out := Outcome{Email: key, Count: count, Threshold: s.threshold}
	if count < s.threshold {
		return out, nil
	}

	user, blocked, err := s.users.BlockActiveByEmail(ctx, key, users.BlockedByAuto, now)
	if err != nil {
		return out, fmt.Errorf("auto-block %s: %w", key, err)
	}
	if !blocked {
		return out, nil
	}

	out.Blocked = true
	out.User = user
	s.log.Info("user auto-blocked",
		zap.String("email", key),
		zap.String("userId", user.ID.Hex()),
		zap.Int("count", count),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyAutoBlock(ctx, user, count); err != nil {
			s.log.Error("auto-block notification failed", zap.String("email", key), zap.Error(err))
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(realtime.EventUserAutoBlocked, AutoBlockEvent{
			UserID:    user.ID.Hex(),
			Email:     key,
			Count:     count,
			BlockedAt: now,
		})
	}

	return out, nil
}

func (s *Service) GetStrikes(ctx context.Context, email string) (int, error) {
	strike, err := s.strikes.Get(ctx, validator.NormalizeEmail(email))
	if err != nil {
		return 0, err
	}
	return strike.Count, nil
}

func (s *Service) GetStrike(ctx context.Context, email string) (*Strike, error) {
	return s.strikes.Get(ctx, validator.NormalizeEmail(email))
}

func (s *Service) ResetStrikes(ctx context.Context, email string) error {
	return s.strikes.Reset(ctx, validator.NormalizeEmail(email))
}
