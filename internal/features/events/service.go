package events

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/users"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cloudinary"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/realtime"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type PostStore interface {
	List(ctx context.Context, q ListQuery) ([]EventPost, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*EventPost, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to, reason, by string, at time.Time) (*EventPost, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type AdminStore interface {
	Create(ctx context.Context, post *AdminEventPost) error
	List(ctx context.Context, q ListQuery) ([]AdminEventPost, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*AdminEventPost, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdateAdminPostRequest, at time.Time) (*AdminEventPost, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID, at time.Time) (*AdminEventPost, error)
	ReactionCounts(ctx context.Context, postID primitive.ObjectID) ([]ReactionCount, error)
	ListTypes(ctx context.Context) ([]EventType, error)
	CreateType(ctx context.Context, t *EventType) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*users.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]users.User, error)
}

type RejectionNotifier interface {
	NotifyPostRejected(ctx context.Context, user *users.User, postID primitive.ObjectID, title, reason string) error
}

// Uploader stores attachments; *cloudinary.Service satisfies it
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, header *multipart.FileHeader, sub string) (*cloudinary.UploadResult, error)
	Delete(ctx context.Context, publicID string, resourceType string) error
}

type Publisher interface {
	Publish(eventType string, data any)
}

// Deps groups the collaborators of Service
type Deps struct {
	Posts     PostStore
	Admin     AdminStore
	Users     UserLookup
	Notifier  RejectionNotifier
	Uploader  Uploader
	Publisher Publisher
}

type Service struct {
	Deps
	now func() time.Time
	log *zap.Logger
}

func NewService(deps Deps) *Service {
	return &Service{
		Deps: deps,
		now:  time.Now,
		log:  logger.Named("events"),
	}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]EventPostResponse, int64, error) {
	q.Normalize()
	posts, total, err := s.Posts.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return s.withPosters(ctx, posts), total, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*EventPostResponse, error) {
	post, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := s.withPosters(ctx, []EventPost{*post})
	return &out[0], nil
}

// withPosters batch-loads the submitting users; lookup failures leave Poster nil
func (s *Service) withPosters(ctx context.Context, posts []EventPost) []EventPostResponse {
	out := make([]EventPostResponse, len(posts))
	for i := range posts {
		out[i] = EventPostResponse{EventPost: posts[i]}
	}
	if s.Users == nil || len(posts) == 0 {
		return out
	}

	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; !ok && !p.UserID.IsZero() {
			seen[p.UserID] = struct{}{}
			ids = append(ids, p.UserID)
		}
	}

	found, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("failed to load posters", zap.Error(err))
		return out
	}
	byID := make(map[primitive.ObjectID]*users.User, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	for i := range out {
		if u, ok := byID[out[i].UserID]; ok {
			out[i].Poster = &Poster{ID: u.ID, Name: u.Name, Email: u.Email, Status: u.Status}
		}
	}
	return out
}

// CheckTransition validates a moderation decision. Posts can only be
// approved or rejected; moving back to Pending is never allowed.
func CheckTransition(from, to string) error {
	if to != StatusApproved && to != StatusRejected {
		return fmt.Errorf("cannot set status %s: %w", to, apperrors.ErrInvalidTransition)
	}
	if from == to {
		return fmt.Errorf("event post is already %s: %w", to, apperrors.ErrConflict)
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, req UpdateStatusRequest, adminEmail string) (*EventPost, error) {
	current, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Deleted {
		return nil, fmt.Errorf("event post is deleted: %w", apperrors.ErrConflict)
	}
	if err := CheckTransition(current.Status, req.Status); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	post, err := s.Posts.UpdateStatus(ctx, id, current.Status, req.Status, reason, adminEmail, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if post.Status == StatusRejected {
		s.notifyRejected(ctx, post, reason)
	}
	if s.Publisher != nil {
		s.Publisher.Publish(realtime.EventEventStatusChanged, StatusChange{
			PostID: post.ID.Hex(),
			From:   current.Status,
			To:     post.Status,
			By:     adminEmail,
		})
	}
	return post, nil
}

func (s *Service) notifyRejected(ctx context.Context, post *EventPost, reason string) {
	if s.Notifier == nil || s.Users == nil || post.UserID.IsZero() {
		return
	}
	poster, err := s.Users.GetByID(ctx, post.UserID)
	if err != nil {
		s.log.Info("rejected post has no poster to notify",
			zap.String("postId", post.ID.Hex()),
			zap.Error(err),
		)
		return
	}
	if err := s.Notifier.NotifyPostRejected(ctx, poster, post.ID, post.Title, reason); err != nil {
		s.log.Error("post rejection notification failed", zap.String("postId", post.ID.Hex()), zap.Error(err))
	}
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Posts.SoftDelete(ctx, id, s.now().UTC())
}

// Attachment is an optional upload accompanying an admin post
type Attachment struct {
	File   io.Reader
	Header *multipart.FileHeader
}

func (s *Service) CreateAdminPost(ctx context.Context, req CreateAdminPostRequest, att *Attachment, adminEmail string) (*AdminEventPost, error) {
	if err := s.checkEventType(ctx, req.EventType); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &AdminEventPost{
		PostType:    req.PostType,
		EventType:   strings.TrimSpace(req.EventType),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatedBy:   adminEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var uploaded *cloudinary.UploadResult
	if att != nil {
		if s.Uploader == nil {
			return nil, cloudinary.ErrNotConfigured
		}
		res, err := s.Uploader.Upload(ctx, att.File, att.Header, "events")
		if err != nil {
			return nil, err
		}
		uploaded = res
		post.Attachment = res.URL
		post.AttachmentFileType = res.Kind
		post.AttachmentPublicID = res.PublicID
	}

	if err := s.Admin.Create(ctx, post); err != nil {
		if uploaded != nil {
			s.removeAsset(ctx, uploaded.PublicID, uploaded.Kind)
		}
		return nil, fmt.Errorf("create admin event post: %w", err)
	}
	return post, nil
}

func (s *Service) checkEventType(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	types, err := s.Admin.ListTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range types {
		if strings.EqualFold(t.Name, name) {
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q: %w", name, apperrors.ErrValidation)
}

func (s *Service) ListAdminPosts(ctx context.Context, q ListQuery) ([]AdminEventPost, int64, error) {
	q.Normalize()
	return s.Admin.List(ctx, q)
}

func (s *Service) UpdateAdminPost(ctx context.Context, id primitive.ObjectID, req UpdateAdminPostRequest) (*AdminEventPost, error) {
	if req.PostType == nil && req.EventType == nil && req.Title == nil && req.Description == nil {
		return nil, fmt.Errorf("nothing to update: %w", apperrors.ErrValidation)
	}
	if req.EventType != nil {
		if err := s.checkEventType(ctx, *req.EventType); err != nil {
			return nil, err
		}
	}
	return s.Admin.Update(ctx, id, req, s.now().UTC())
}

// DeleteAdminPost soft-deletes the post and drops its Cloudinary asset
func (s *Service) DeleteAdminPost(ctx context.Context, id primitive.ObjectID) error {
	post, err := s.Admin.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		return err
	}
	if post.AttachmentPublicID != "" {
		s.removeAsset(ctx, post.AttachmentPublicID, post.AttachmentFileType)
	}
	return nil
}

func (s *Service) removeAsset(ctx context.Context, publicID, kind string) {
	if s.Uploader == nil {
		return
	}
	if err := s.Uploader.Delete(ctx, publicID, cloudinary.ResourceTypeFor(kind)); err != nil {
		s.log.Warn("failed to delete attachment", zap.String("publicId", publicID), zap.Error(err))
	}
}

func (s *Service) Reactions(ctx context.Context, postID primitive.ObjectID) (*ReactionSummary, error) {
	if _, err := s.Admin.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	counts, err := s.Admin.ReactionCounts(ctx, postID)
	if err != nil {
		return nil, err
	}

	summary := &ReactionSummary{PostID: postID, Counts: counts}
	for _, c := range counts {
		summary.Total += c.Count
	}
	return summary, nil
}

func (s *Service) ListTypes(ctx context.Context) ([]EventType, error) {
	return s.Admin.ListTypes(ctx)
}

func (s *Service) CreateType(ctx context.Context, req CreateEventTypeRequest, adminEmail string) (*EventType, error) {
	t := &EventType{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedBy:   adminEmail,
		CreatedAt:   s.now().UTC(),
	}
	if t.Name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrValidation)
	}
	if err := s.Admin.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
