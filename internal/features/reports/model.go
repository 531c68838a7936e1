package reports

import (
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/moderation"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report types
const (
	TypeUser    = "USER"
	TypePost    = "POST"
	TypeComment = "COMMENT"
)

// Report statuses
const (
	StatusOpen      = "OPEN"
	StatusInReview  = "IN_REVIEW"
	StatusResolved  = "RESOLVED"
	StatusDismissed = "DISMISSED"
)

var (
	Types    = []string{TypeUser, TypePost, TypeComment}
	Statuses = []string{StatusOpen, StatusInReview, StatusResolved, StatusDismissed}
)

type Report struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type            string              `bson:"type" json:"type"`
	Reason          string              `bson:"reason" json:"reason"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	TargetID        *primitive.ObjectID `bson:"targetId,omitempty" json:"targetId,omitempty"`
	TargetUserEmail string              `bson:"targetUserEmail,omitempty" json:"targetUserEmail,omitempty"`
	ReportedBy      string              `bson:"reportedBy,omitempty" json:"reportedBy,omitempty"`
	Status          string              `bson:"status" json:"status"`
	Note            string              `bson:"note,omitempty" json:"note,omitempty"`
	ResolvedBy      string              `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the report has been closed
func (r *Report) IsTerminal() bool {
	return r.Status == StatusResolved || r.Status == StatusDismissed
}

// Request DTOs

type CreateReportRequest struct {
	Type            string `json:"type" binding:"required,reporttype"`
	Reason          string `json:"reason" binding:"required,min=3,max=200"`
	Description     string `json:"description" binding:"max=2000"`
	TargetID        string `json:"targetId" binding:"omitempty,len=24,hexadecimal"`
	TargetUserEmail string `json:"targetUserEmail" binding:"omitempty,max=254"`
}

type ListQuery struct {
	pagination.Params
	Status string `form:"status" binding:"omitempty,reportstatus"`
	Type   string `form:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,reportstatus"`
	Note   string `json:"note" binding:"max=1000"`
}

// Response DTOs

type CreateReportResponse struct {
	Report     *Report             `json:"report"`
	Moderation *moderation.Outcome `json:"moderation,omitempty"`
}
