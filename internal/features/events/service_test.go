package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/awaaz-admin/internal/features/users"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/cloudinary"
	"github.com/xyz-asif/awaaz-admin/internal/realtime"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memPosts struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*EventPost
}

func newMemPosts(posts ...EventPost) *memPosts {
	m := &memPosts{posts: map[primitive.ObjectID]*EventPost{}}
	for i := range posts {
		p := posts[i]
		m.posts[p.ID] = &p
	}
	return m
}

func (m *memPosts) List(_ context.Context, q ListQuery) ([]EventPost, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []EventPost{}
	for _, p := range m.posts {
		if p.Deleted && !q.IncludeDeleted {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *memPosts) GetByID(_ context.Context, id primitive.ObjectID) (*EventPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("event post: %w", apperrors.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to, reason, by string, at time.Time) (*EventPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.Status != from || p.Deleted {
		return nil, fmt.Errorf("event post changed concurrently: %w", apperrors.ErrConflict)
	}
	p.Status, p.ReviewedBy, p.ReviewedAt, p.UpdatedAt = to, by, &at, at
	if to == StatusRejected {
		p.RejectionReason = reason
	} else {
		p.RejectionReason = ""
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) SoftDelete(_ context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return fmt.Errorf("event post: %w", apperrors.ErrNotFound)
	}
	if p.Deleted {
		return fmt.Errorf("event post already deleted: %w", apperrors.ErrConflict)
	}
	p.Deleted, p.DeletedAt = true, &at
	return nil
}

type memAdmin struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]*AdminEventPost
	types     []EventType
	reactions map[primitive.ObjectID][]ReactionCount
	createErr error
}

func newMemAdmin() *memAdmin {
	return &memAdmin{
		posts:     map[primitive.ObjectID]*AdminEventPost{},
		reactions: map[primitive.ObjectID][]ReactionCount{},
	}
}

func (m *memAdmin) Create(_ context.Context, post *AdminEventPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	post.ID = primitive.NewObjectID()
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *memAdmin) List(_ context.Context, _ ListQuery) ([]AdminEventPost, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []AdminEventPost{}
	for _, p := range m.posts {
		if !p.Deleted {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memAdmin) GetByID(_ context.Context, id primitive.ObjectID) (*AdminEventPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.Deleted {
		return nil, fmt.Errorf("admin event post: %w", apperrors.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memAdmin) Update(_ context.Context, id primitive.ObjectID, req UpdateAdminPostRequest, at time.Time) (*AdminEventPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.Deleted {
		return nil, fmt.Errorf("admin event post: %w", apperrors.ErrNotFound)
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.EventType != nil {
		p.EventType = *req.EventType
	}
	p.UpdatedAt = at
	cp := *p
	return &cp, nil
}

func (m *memAdmin) SoftDelete(_ context.Context, id primitive.ObjectID, at time.Time) (*AdminEventPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.Deleted {
		return nil, fmt.Errorf("admin event post: %w", apperrors.ErrNotFound)
	}
	before := *p
	p.Deleted, p.DeletedAt = true, &at
	return &before, nil
}

func (m *memAdmin) ReactionCounts(_ context.Context, postID primitive.ObjectID) ([]ReactionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReactionCount{}, m.reactions[postID]...), nil
}

func (m *memAdmin) ListTypes(_ context.Context) ([]EventType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EventType{}, m.types...), nil
}

func (m *memAdmin) CreateType(_ context.Context, t *EventType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.types {
		if strings.EqualFold(existing.Name, t.Name) {
			return fmt.Errorf("event type %q: %w", t.Name, apperrors.ErrDuplicate)
		}
	}
	t.ID = primitive.NewObjectID()
	m.types = append(m.types, *t)
	return nil
}

type memUsers map[primitive.ObjectID]users.User

func (m memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*users.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	return &u, nil
}

func (m memUsers) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]users.User, error) {
	out := []users.User{}
	for _, id := range ids {
		if u, ok := m[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type rejection struct {
	email  string
	title  string
	reason string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []rejection
}

func (r *recordingNotifier) NotifyPostRejected(_ context.Context, u *users.User, _ primitive.ObjectID, title, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, rejection{email: u.Email, title: title, reason: reason})
	return nil
}

type published struct {
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(eventType string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{eventType, data})
}

type fakeUploader struct {
	uploaded []string
	deleted  []string
	fail     error
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader, header *multipart.FileHeader, sub string) (*cloudinary.UploadResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	kind, err := cloudinary.ValidateAttachment(header)
	if err != nil {
		return nil, err
	}
	publicID := "aawaz/" + sub + "/" + header.Filename
	f.uploaded = append(f.uploaded, publicID)
	return &cloudinary.UploadResult{
		URL:          "https://res.cloudinary.com/demo/" + publicID,
		PublicID:     publicID,
		ResourceType: cloudinary.ResourceTypeFor(kind),
		Kind:         kind,
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID, resourceType string) error {
	f.deleted = append(f.deleted, resourceType+":"+publicID)
	return nil
}

type serviceFixture struct {
	svc      *Service
	posts    *memPosts
	admin    *memAdmin
	notifier *recordingNotifier
	pub      *recordingPublisher
	uploader *fakeUploader
	poster   users.User
	postID   primitive.ObjectID
}

func newServiceFixture() *serviceFixture {
	poster := users.User{ID: primitive.NewObjectID(), Name: "Riya", Email: "riya@x.com", Status: users.StatusActive}
	post := EventPost{
		ID:       primitive.NewObjectID(),
		UserID:   poster.ID,
		PostType: PostTypeIncident,
		Title:    "Road blocked near river",
		Status:   StatusPending,
	}

	f := &serviceFixture{
		posts:    newMemPosts(post),
		admin:    newMemAdmin(),
		notifier: &recordingNotifier{},
		pub:      &recordingPublisher{},
		uploader: &fakeUploader{},
		poster:   poster,
		postID:   post.ID,
	}
	f.svc = NewService(Deps{
		Posts:     f.posts,
		Admin:     f.admin,
		Users:     memUsers{poster.ID: poster},
		Notifier:  f.notifier,
		Uploader:  f.uploader,
		Publisher: f.pub,
	})
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"approve pending", StatusPending, StatusApproved, nil},
		{"reject pending", StatusPending, StatusRejected, nil},
		{"reject approved", StatusApproved, StatusRejected, nil},
		{"back to pending", StatusApproved, StatusPending, apperrors.ErrInvalidTransition},
		{"same status", StatusRejected, StatusRejected, apperrors.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateStatusRejectNotifiesPoster(t *testing.T) {
	f := newServiceFixture()

	post, err := f.svc.UpdateStatus(context.Background(), f.postID,
		UpdateStatusRequest{Status: StatusRejected, Reason: "  duplicate  "}, "ops@awaaz.app")
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, post.Status)
	assert.Equal(t, "duplicate", post.RejectionReason)
	assert.Equal(t, "ops@awaaz.app", post.ReviewedBy)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, rejection{email: "riya@x.com", title: "Road blocked near river", reason: "duplicate"}, f.notifier.sent[0])

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, realtime.EventEventStatusChanged, f.pub.events[0].eventType)
	assert.Equal(t, StatusChange{PostID: f.postID.Hex(), From: StatusPending, To: StatusRejected, By: "ops@awaaz.app"}, f.pub.events[0].data)
}

func TestUpdateStatusApproveDoesNotNotify(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.UpdateStatus(context.Background(), f.postID, UpdateStatusRequest{Status: StatusApproved}, "ops@awaaz.app")
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sent)

	_, err = f.svc.UpdateStatus(context.Background(), f.postID, UpdateStatusRequest{Status: StatusApproved}, "ops@awaaz.app")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.UpdateStatus(context.Background(), f.postID, UpdateStatusRequest{Status: StatusPending}, "ops@awaaz.app")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestUpdateStatusOnDeletedPost(t *testing.T) {
	f := newServiceFixture()
	require.NoError(t, f.svc.Delete(context.Background(), f.postID))

	_, err := f.svc.UpdateStatus(context.Background(), f.postID, UpdateStatusRequest{Status: StatusApproved}, "ops@awaaz.app")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.postID), apperrors.ErrConflict)
}

func TestListAttachesPoster(t *testing.T) {
	f := newServiceFixture()
	orphan := EventPost{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Status: StatusPending}
	f.posts.posts[orphan.ID] = &orphan

	posts, total, err := f.svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	for _, p := range posts {
		if p.ID == f.postID {
			require.NotNil(t, p.Poster)
			assert.Equal(t, "riya@x.com", p.Poster.Email)
		} else {
			assert.Nil(t, p.Poster)
		}
	}
}

func fileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestCreateAdminPostUploadsAttachment(t *testing.T) {
	f := newServiceFixture()

	post, err := f.svc.CreateAdminPost(context.Background(), CreateAdminPostRequest{
		PostType: PostTypeRescue,
		Title:    " Relief camp open ",
	}, &Attachment{File: strings.NewReader("img"), Header: fileHeader("camp.png", 100)}, "ops@awaaz.app")
	require.NoError(t, err)

	assert.Equal(t, "Relief camp open", post.Title)
	assert.Equal(t, cloudinary.KindImage, post.AttachmentFileType)
	assert.Equal(t, "aawaz/events/camp.png", post.AttachmentPublicID)
	assert.Equal(t, "ops@awaaz.app", post.CreatedBy)
	assert.Len(t, f.admin.posts, 1)
}

func TestCreateAdminPostCleansUpOnStoreFailure(t *testing.T) {
	f := newServiceFixture()
	f.admin.createErr = errors.New("write failed")

	_, err := f.svc.CreateAdminPost(context.Background(), CreateAdminPostRequest{
		PostType: PostTypeIncident,
		Title:    "Flood warning",
	}, &Attachment{File: strings.NewReader("vid"), Header: fileHeader("clip.mp4", 100)}, "ops@awaaz.app")
	require.Error(t, err)
	assert.Equal(t, []string{"video:aawaz/events/clip.mp4"}, f.uploader.deleted)
}

func TestCreateAdminPostRejectsUnknownEventType(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.CreateAdminPost(context.Background(), CreateAdminPostRequest{
		PostType:  PostTypeIncident,
		EventType: "Meteor",
		Title:     "Sky watch",
	}, nil, "ops@awaaz.app")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.CreateType(context.Background(), CreateEventTypeRequest{Name: "Meteor"}, "ops@awaaz.app")
	require.NoError(t, err)

	_, err = f.svc.CreateAdminPost(context.Background(), CreateAdminPostRequest{
		PostType:  PostTypeIncident,
		EventType: "meteor",
		Title:     "Sky watch",
	}, nil, "ops@awaaz.app")
	assert.NoError(t, err)
}

func TestDeleteAdminPostRemovesAsset(t *testing.T) {
	f := newServiceFixture()
	post, err := f.svc.CreateAdminPost(context.Background(), CreateAdminPostRequest{
		PostType: PostTypeGeneralCategory,
		Title:    "Helpline numbers",
	}, &Attachment{File: strings.NewReader("pdf"), Header: fileHeader("numbers.pdf", 100)}, "ops@awaaz.app")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAdminPost(context.Background(), post.ID))
	assert.Equal(t, []string{"raw:aawaz/events/numbers.pdf"}, f.uploader.deleted)

	assert.ErrorIs(t, f.svc.DeleteAdminPost(context.Background(), post.ID), apperrors.ErrNotFound)
}

func TestReactionsSummary(t *testing.T) {
	f := newServiceFixture()
	post, err := f.svc.CreateAdminPost(context.Background(), CreateAdminPostRequest{
		PostType: PostTypeRescue,
		Title:    "Boats needed",
	}, nil, "ops@awaaz.app")
	require.NoError(t, err)
	f.admin.reactions[post.ID] = []ReactionCount{{Reaction: "support", Count: 4}, {Reaction: "sad", Count: 1}}

	summary, err := f.svc.Reactions(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.Total)
	assert.Len(t, summary.Counts, 2)

	_, err = f.svc.Reactions(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateAdminPostRequiresAField(t *testing.T) {
	f := newServiceFixture()
	_, err := f.svc.UpdateAdminPost(context.Background(), primitive.NewObjectID(), UpdateAdminPostRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
