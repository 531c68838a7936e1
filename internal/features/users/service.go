package users

import (
	"context"
	"fmt"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the persistence surface the service needs
type Store interface {
	List(ctx context.Context, q ListQuery) ([]User, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	Block(ctx context.Context, id primitive.ObjectID, by string, at time.Time) (*User, error)
	Unblock(ctx context.Context, id primitive.ObjectID, at time.Time) (*User, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status, by string, at time.Time) (*User, error)
}

// StrikeCounter exposes the auto-block counters kept per email
type StrikeCounter interface {
	GetStrikes(ctx context.Context, email string) (int, error)
	ResetStrikes(ctx context.Context, email string) error
}

type Service struct {
	store   Store
	strikes StrikeCounter
	now     func() time.Time
}

func NewService(store Store, strikes StrikeCounter) *Service {
	return &Service{store: store, strikes: strikes, now: time.Now}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]User, int64, error) {
	if err := ValidateListQuery(&q); err != nil {
		return nil, 0, err
	}
	return s.store.List(ctx, q)
}

// Get returns the user with their current report count
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*UserDetail, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{User: user}
	if s.strikes != nil {
		count, err := s.strikes.GetStrikes(ctx, user.Email)
		if err != nil {
			return nil, fmt.Errorf("load strikes: %w", err)
		}
		detail.ReportCount = count
	}
	return detail, nil
}

func (s *Service) Block(ctx context.Context, id primitive.ObjectID, adminEmail string) (*User, error) {
	user, err := s.store.Block(ctx, id, adminEmail, s.now().UTC())
	if err != nil {
		return nil, err
	}
	logger.Info("user blocked", zap.String("userId", id.Hex()), zap.String("by", adminEmail))
	return user, nil
}

// Unblock reactivates the user and clears their strikes so the next
// threshold is counted from zero.
func (s *Service) Unblock(ctx context.Context, id primitive.ObjectID) (*User, error) {
	user, err := s.store.Unblock(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.resetStrikes(ctx, user.Email)
	return user, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, adminEmail string) (*User, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, apperrors.ErrValidation)
	}

	user, err := s.store.SetStatus(ctx, id, status, adminEmail, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if status != StatusInactive {
		s.resetStrikes(ctx, user.Email)
	}
	return user, nil
}

func (s *Service) resetStrikes(ctx context.Context, email string) {
	if s.strikes == nil {
		return
	}
	if err := s.strikes.ResetStrikes(ctx, email); err != nil {
		logger.Warn("failed to reset strikes", zap.String("email", email), zap.Error(err))
	}
}
