package events

import (
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types
const (
	PostTypeIncident        = "incident"
	PostTypeRescue          = "rescue"
	PostTypeGeneralCategory = "general_category"
)

// Moderation statuses, capitalized as stored by the mobile app
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var (
	PostTypes = []string{PostTypeIncident, PostTypeRescue, PostTypeGeneralCategory}
	Statuses  = []string{StatusPending, StatusApproved, StatusRejected}
)

type Location struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// EventPost is a user-submitted post awaiting moderation (eventposts)
type EventPost struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	PostType           string             `bson:"postType" json:"postType"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Location           *Location          `bson:"location,omitempty" json:"location,omitempty"`
	Attachment         string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
	AttachmentFileType string             `bson:"attachmentFileType,omitempty" json:"attachmentFileType,omitempty"`
	Status             string             `bson:"status" json:"status"`
	RejectionReason    string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	ReviewedBy         string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt         *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	Deleted            bool               `bson:"deleted" json:"deleted"`
	DeletedAt          *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AdminEventPost is an announcement published by the back office (admineventposts)
type AdminEventPost struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostType           string             `bson:"postType" json:"postType"`
	EventType          string             `bson:"eventType,omitempty" json:"eventType,omitempty"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Attachment         string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
	AttachmentFileType string             `bson:"attachmentFileType,omitempty" json:"attachmentFileType,omitempty"`
	AttachmentPublicID string             `bson:"attachmentPublicId,omitempty" json:"-"`
	CreatedBy          string             `bson:"createdBy" json:"createdBy"`
	Deleted            bool               `bson:"deleted" json:"deleted"`
	DeletedAt          *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Reaction is one user's reaction to an admin post (admineventreactions)
type Reaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Reaction  string             `bson:"reaction" json:"reaction"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// EventType is an admin-managed category label (admineventtypes)
type EventType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Request DTOs

type ListQuery struct {
	pagination.Params
	PostType       string `form:"postType" binding:"omitempty,posttype"`
	Status         string `form:"status" binding:"omitempty,eventstatus"`
	Search         string `form:"search" binding:"omitempty,max=100"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,eventstatus"`
	Reason string `json:"reason" binding:"max=500"`
}

// CreateAdminPostRequest is bound from multipart form fields
type CreateAdminPostRequest struct {
	PostType    string `form:"postType" binding:"required,posttype"`
	EventType   string `form:"eventType" binding:"omitempty,max=60"`
	Title       string `form:"title" binding:"required,min=3,max=200"`
	Description string `form:"description" binding:"max=5000"`
}

type UpdateAdminPostRequest struct {
	PostType    *string `json:"postType" binding:"omitempty,posttype"`
	EventType   *string `json:"eventType" binding:"omitempty,max=60"`
	Title       *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

type CreateEventTypeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=60"`
	Description string `json:"description" binding:"max=300"`
}

// Response DTOs

type Poster struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Status string             `json:"status"`
}

type EventPostResponse struct {
	EventPost
	Poster *Poster `json:"poster,omitempty"`
}

type ReactionCount struct {
	Reaction string `bson:"_id" json:"reaction"`
	Count    int64  `bson:"count" json:"count"`
}

type ReactionSummary struct {
	PostID primitive.ObjectID `json:"postId"`
	Total  int64              `json:"total"`
	Counts []ReactionCount    `json:"counts"`
}

// DailyCount is one point of the events timeline
type DailyCount struct {
	Date  string `bson:"_id" json:"date"`
	Count int64  `bson:"count" json:"count"`
}

// StatusChange is published when a moderator approves or rejects a post
type StatusChange struct {
	PostID string `json:"postId"`
	From   string `json:"from"`
	To     string `json:"to"`
	By     string `json:"by"`
}
