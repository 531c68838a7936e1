package notifications

import (
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification type constants
const (
	TypeAutoBlock    = "auto_block"
	TypePostRejected = "post_rejected"
)

// Notification is a notice addressed to an app user by email
type Notification struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipientEmail string              `bson:"recipientEmail" json:"recipientEmail"`
	RecipientID    *primitive.ObjectID `bson:"recipientId,omitempty" json:"recipientId,omitempty"`
	Type           string              `bson:"type" json:"type"`
	Title          string              `bson:"title" json:"title"`
	Message        string              `bson:"message" json:"message"`
	ResourceType   string              `bson:"resourceType,omitempty" json:"resourceType,omitempty"`
	ResourceID     *primitive.ObjectID `bson:"resourceId,omitempty" json:"resourceId,omitempty"`
	IsRead         bool                `bson:"isRead" json:"isRead"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

// Request DTOs

type ListQuery struct {
	pagination.Params
	Email      string `form:"email" binding:"omitempty,email"`
	Type       string `form:"type"`
	UnreadOnly bool   `form:"unreadOnly"`
}

// Response DTOs

type MarkReadResponse struct {
	ID     primitive.ObjectID `json:"id"`
	IsRead bool               `json:"isRead"`
}

// Delivery is the out-of-band copy of a notification: e-mail and/or push
type Delivery struct {
	NotificationID string            `json:"notificationId"`
	Email          string            `json:"email"`
	FCMToken       string            `json:"fcmToken,omitempty"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Data           map[string]string `json:"data,omitempty"`
}
