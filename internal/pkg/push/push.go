package push

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var ErrNotConfigured = errors.New("push is not configured")

// Message is one device notification
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type Pusher struct {
	client *messaging.Client
}

// New initializes the Firebase Admin SDK from a service account file and
// returns a Pusher backed by Cloud Messaging
func New(ctx context.Context, serviceAccountPath string) (*Pusher, error) {
	if serviceAccountPath == "" {
		return nil, ErrNotConfigured
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	return &Pusher{client: client}, nil
}

func (p *Pusher) Enabled() bool {
	return p != nil && p.client != nil
}

// Send delivers msg to a single device and returns the FCM message id
func (p *Pusher) Send(ctx context.Context, msg Message) (string, error) {
	if !p.Enabled() {
		return "", ErrNotConfigured
	}
	if msg.Token == "" {
		return "", errors.New("push: empty device token")
	}
	return p.client.Send(ctx, Build(msg))
}

// Build converts msg into the FCM payload
func Build(msg Message) *messaging.Message {
	return &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

// IsUnregistered reports whether err means the device token is dead
func IsUnregistered(err error) bool {
	return messaging.IsUnregistered(err)
}
