package users

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store with the same transition rules as Repository
type memStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*User
}

func newMemStore(users ...*User) *memStore {
	s := &memStore{users: map[primitive.ObjectID]*User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) List(_ context.Context, q ListQuery) ([]User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []User{}
	for _, u := range s.users {
		if q.Status == "" || u.Status == q.Status {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memStore) GetByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) Block(_ context.Context, id primitive.ObjectID, by string, at time.Time) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	if u.Status == StatusInactive {
		return nil, fmt.Errorf("user is inactive: %w", apperrors.ErrConflict)
	}
	u.Status, u.BlockedBy, u.BlockedAt = StatusInactive, by, &at
	cp := *u
	return &cp, nil
}

func (s *memStore) Unblock(_ context.Context, id primitive.ObjectID, _ time.Time) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	if u.Status != StatusInactive {
		return nil, fmt.Errorf("user is %s: %w", u.Status, apperrors.ErrConflict)
	}
	u.Status, u.BlockedBy, u.BlockedAt = StatusActive, "", nil
	cp := *u
	return &cp, nil
}

func (s *memStore) SetStatus(_ context.Context, id primitive.ObjectID, status, by string, at time.Time) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", apperrors.ErrNotFound)
	}
	u.Status = status
	if status == StatusInactive {
		u.BlockedBy, u.BlockedAt = by, &at
	} else {
		u.BlockedBy, u.BlockedAt = "", nil
	}
	cp := *u
	return &cp, nil
}

type fakeStrikes struct {
	counts map[string]int
	resets []string
}

func (f *fakeStrikes) GetStrikes(_ context.Context, email string) (int, error) {
	return f.counts[email], nil
}

func (f *fakeStrikes) ResetStrikes(_ context.Context, email string) error {
	f.resets = append(f.resets, email)
	delete(f.counts, email)
	return nil
}

func fixedNow() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func TestService_GetIncludesReportCount(t *testing.T) {
	u := &User{Email: "a@x.com", Status: StatusActive}
	strikes := &fakeStrikes{counts: map[string]int{"a@x.com": 2}}
	svc := NewService(newMemStore(u), strikes)

	detail, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.ReportCount)
	assert.Equal(t, "a@x.com", detail.Email)
}

func TestService_GetMissing(t *testing.T) {
	svc := NewService(newMemStore(), nil)
	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestService_BlockThenUnblock(t *testing.T) {
	u := &User{Email: "b@x.com", Status: StatusActive}
	strikes := &fakeStrikes{counts: map[string]int{"b@x.com": 3}}
	svc := NewService(newMemStore(u), strikes)
	svc.now = fixedNow

	blocked, err := svc.Block(context.Background(), u.ID, "admin@awaaz.app")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, blocked.Status)
	assert.Equal(t, "admin@awaaz.app", blocked.BlockedBy)
	require.NotNil(t, blocked.BlockedAt)
	assert.True(t, blocked.BlockedAt.Equal(fixedNow()))

	_, err = svc.Block(context.Background(), u.ID, "admin@awaaz.app")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	active, err := svc.Unblock(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, active.Status)
	assert.Empty(t, active.BlockedBy)
	assert.Nil(t, active.BlockedAt)
	assert.Equal(t, []string{"b@x.com"}, strikes.resets)
}

func TestService_UnblockActiveUserConflicts(t *testing.T) {
	u := &User{Email: "c@x.com", Status: StatusActive}
	svc := NewService(newMemStore(u), &fakeStrikes{})

	_, err := svc.Unblock(context.Background(), u.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestService_UpdateStatus(t *testing.T) {
	u := &User{Email: "d@x.com", Status: StatusPending}
	strikes := &fakeStrikes{counts: map[string]int{}}
	svc := NewService(newMemStore(u), strikes)

	_, err := svc.UpdateStatus(context.Background(), u.ID, "banned", "admin@awaaz.app")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	updated, err := svc.UpdateStatus(context.Background(), u.ID, StatusActive, "admin@awaaz.app")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, updated.Status)
	assert.Equal(t, []string{"d@x.com"}, strikes.resets)
}

func TestService_UpdateStatusOutOfInactiveResetsStrikes(t *testing.T) {
	u := &User{Email: "e@x.com", Status: StatusInactive, BlockedBy: BlockedByAuto}
	strikes := &fakeStrikes{counts: map[string]int{"e@x.com": 3}}
	svc := NewService(newMemStore(u), strikes)

	updated, err := svc.UpdateStatus(context.Background(), u.ID, StatusPending, "admin@awaaz.app")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, []string{"e@x.com"}, strikes.resets)

	_, err = svc.UpdateStatus(context.Background(), u.ID, StatusInactive, "admin@awaaz.app")
	require.NoError(t, err)
	assert.Equal(t, []string{"e@x.com"}, strikes.resets)
}

func TestService_ListRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMemStore(), nil)
	_, _, err := svc.List(context.Background(), ListQuery{Status: "gone"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
