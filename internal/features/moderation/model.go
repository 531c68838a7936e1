package moderation

import (
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/users"
)

// DefaultThreshold is the report count that deactivates a user
const DefaultThreshold = 3

// Strike is the per-email report counter stored in reportstrikes.
// The normalized email is the document key.
type Strike struct {
	Email          string    `bson:"_id" json:"email"`
	Count          int       `bson:"count" json:"count"`
	LastReportedAt time.Time `bson:"lastReportedAt" json:"lastReportedAt"`
}

// Outcome describes what one recorded report did
type Outcome struct {
	Email     string      `json:"email"`
	Count     int         `json:"count"`
	Threshold int         `json:"threshold"`
	Blocked   bool        `json:"blocked"`
	User      *users.User `json:"-"`
}

// AutoBlockEvent is published when a user crosses the threshold
type AutoBlockEvent struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Count     int       `json:"count"`
	BlockedAt time.Time `json:"blockedAt"`
}
