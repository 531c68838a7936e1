package users

import (
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User status values
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// BlockedByAuto marks a block applied by the report threshold rule
const BlockedByAuto = "auto"

var Statuses = []string{StatusActive, StatusInactive, StatusPending}

// User is an app user as stored in the users collection
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role              string             `bson:"role" json:"role"`
	Status            string             `bson:"status" json:"status"`
	ProfilePictureURL string             `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	FCMToken          string             `bson:"fcmToken,omitempty" json:"-"`
	BlockedBy         string             `bson:"blockedBy,omitempty" json:"blockedBy,omitempty"`
	BlockedAt         *time.Time         `bson:"blockedAt,omitempty" json:"blockedAt,omitempty"`
	JoinedAt          time.Time          `bson:"joinedAt" json:"joinedAt"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsBlocked reports whether the user is currently inactive
func (u *User) IsBlocked() bool {
	return u.Status == StatusInactive
}

// ListQuery is bound from GET /user/list
type ListQuery struct {
	pagination.Params
	Status string `form:"status" binding:"omitempty,userstatus"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,userstatus"`
}

// UserDetail adds moderation context to a user
type UserDetail struct {
	*User
	ReportCount int `json:"reportCount"`
}
