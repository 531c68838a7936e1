package notifications

import (
	"context"
	"fmt"

	"github.com/xyz-asif/awaaz-admin/internal/features/users"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, q ListQuery) ([]Notification, int64, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	CountUnread(ctx context.Context, email string) (int64, error)
}

// Dispatcher hands a stored notification to out-of-band delivery
type Dispatcher interface {
	Dispatch(ctx context.Context, d Delivery) error
}

type Service struct {
	store      Store
	dispatcher Dispatcher
	log        *zap.Logger
}

func NewService(store Store, dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		log:        logger.Named("notifications"),
	}
}

// NotifyAutoBlock stores the suspension notice for an auto-blocked user
func (s *Service) NotifyAutoBlock(ctx context.Context, user *users.User, count int) error {
	n := &Notification{
		RecipientEmail: user.Email,
		RecipientID:    &user.ID,
		Type:           TypeAutoBlock,
		Title:          "Account suspended",
		Message: fmt.Sprintf(
			"Your account has been suspended after receiving %d reports. Contact support if you believe this is a mistake.",
			count,
		),
		ResourceType: "user",
		ResourceID:   &user.ID,
	}
	return s.create(ctx, n, user.FCMToken)
}

// NotifyPostRejected tells the poster their event post was rejected
func (s *Service) NotifyPostRejected(ctx context.Context, user *users.User, postID primitive.ObjectID, title, reason string) error {
	msg := fmt.Sprintf("Your post %q was rejected by a moderator.", title)
	if reason != "" {
		msg += " Reason: " + reason
	}

	n := &Notification{
		RecipientEmail: user.Email,
		RecipientID:    &user.ID,
		Type:           TypePostRejected,
		Title:          "Post rejected",
		Message:        msg,
		ResourceType:   "eventpost",
		ResourceID:     &postID,
	}
	return s.create(ctx, n, user.FCMToken)
}

func (s *Service) create(ctx context.Context, n *Notification, fcmToken string) error {
	if err := s.store.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.dispatcher == nil {
		return nil
	}

	d := Delivery{
		NotificationID: n.ID.Hex(),
		Email:          n.RecipientEmail,
		FCMToken:       fcmToken,
		Title:          n.Title,
		Message:        n.Message,
		Data: map[string]string{
			"type":           n.Type,
			"notificationId": n.ID.Hex(),
		},
	}
	if err := s.dispatcher.Dispatch(ctx, d); err != nil {
		// the record is the source of truth, delivery is best effort
		s.log.Warn("notification dispatch failed",
			zap.String("notificationId", d.NotificationID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Notification, int64, error) {
	q.Normalize()
	return s.store.List(ctx, q)
}

func (s *Service) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	return s.store.MarkAsRead(ctx, id)
}

func (s *Service) CountUnread(ctx context.Context, email string) (int64, error) {
	return s.store.CountUnread(ctx, email)
}
