package notifications

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/push"
	"go.uber.org/zap"
)

type EmailSender interface {
	Enabled() bool
	Send(subject, htmlBody string, to ...string) error
}

type PushSender interface {
	Enabled() bool
	Send(ctx context.Context, msg push.Message) (string, error)
}

// Deliverer sends a Delivery over every configured channel
type Deliverer struct {
	mail EmailSender
	push PushSender
	log  *zap.Logger
}

func NewDeliverer(mail EmailSender, pusher PushSender) *Deliverer {
	return &Deliverer{mail: mail, push: pusher, log: logger.Named("delivery")}
}

func (d *Deliverer) Deliver(ctx context.Context, del Delivery) error {
	var errs []error

	if d.mail != nil && d.mail.Enabled() && del.Email != "" {
		body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", html.EscapeString(del.Title), html.EscapeString(del.Message))
		if err := d.mail.Send(del.Title, body, del.Email); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}

	if d.push != nil && d.push.Enabled() && del.FCMToken != "" {
		id, err := d.push.Send(ctx, push.Message{
			Token: del.FCMToken,
			Title: del.Title,
			Body:  del.Message,
			Data:  del.Data,
		})
		switch {
		case err == nil:
			d.log.Debug("push sent", zap.String("messageId", id))
		case push.IsUnregistered(err):
			d.log.Info("stale fcm token", zap.String("email", del.Email))
		default:
			errs = append(errs, fmt.Errorf("push: %w", err))
		}
	}

	return errors.Join(errs...)
}

// InlineDispatcher delivers in a background goroutine when no queue is configured
type InlineDispatcher struct {
	deliverer *Deliverer
	timeout   time.Duration
}

func NewInlineDispatcher(deliverer *Deliverer) *InlineDispatcher {
	return &InlineDispatcher{deliverer: deliverer, timeout: 30 * time.Second}
}

func (i *InlineDispatcher) Dispatch(_ context.Context, del Delivery) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
		defer cancel()
		if err := i.deliverer.Deliver(ctx, del); err != nil {
			i.deliverer.log.Warn("inline delivery failed",
				zap.String("notificationId", del.NotificationID),
				zap.Error(err),
			)
		}
	}()
	return nil
}
