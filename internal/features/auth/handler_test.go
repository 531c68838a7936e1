package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/awaaz-admin/internal/middleware"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/jwt"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/ratelimit"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "auth-secret"

type memStore struct {
	mu     sync.Mutex
	admins map[string]*Admin
}

func newMemStore() *memStore {
	return &memStore{admins: map[string]*Admin{}}
}

func (m *memStore) Create(_ context.Context, admin *Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[admin.Email]; ok {
		return fmt.Errorf("admin %s: %w", admin.Email, apperrors.ErrDuplicate)
	}
	admin.ID = primitive.NewObjectID()
	cp := *admin
	m.admins[admin.Email] = &cp
	return nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[email]
	if !ok {
		return nil, fmt.Errorf("admin: %w", apperrors.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) GetByID(_ context.Context, id primitive.ObjectID) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("admin: %w", apperrors.ErrNotFound)
}

func (m *memStore) TouchLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.ID == id {
			a.LastLoginAt = &at
		}
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewService(store, jwt.DefaultConfig(testSecret, 2))

	_, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{
		Name:     "Ops",
		Email:    " Ops@Awaaz.app ",
		Password: "correct-horse",
		Role:     middleware.RoleModerator,
	})
	require.NoError(t, err)
	return svc, store
}

func TestCreateAdminValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{Name: "x", Email: "bad", Password: "short", Role: "root"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
	assert.Contains(t, err.Error(), "role must be one of")

	_, err = svc.CreateAdmin(context.Background(), CreateAdminRequest{Name: "Dup", Email: "ops@awaaz.app", Password: "another-pass"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	svc, store := newTestService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "OPS@awaaz.app", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(7200), resp.ExpiresIn)
	assert.NotNil(t, store.admins["ops@awaaz.app"].LastLoginAt)

	claims, err := jwt.ValidateTokenWithRole(resp.AccessToken, testSecret, middleware.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, "ops@awaaz.app", claims.Email)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ops@awaaz.app", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@awaaz.app", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	store.admins["ops@awaaz.app"].Active = false
	_, err = svc.Login(context.Background(), LoginRequest{Email: "ops@awaaz.app", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func setupRouter(t *testing.T, loginsPerMinute int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)

	router := gin.New()
	limiter := ratelimit.Middleware(ratelimit.New(loginsPerMinute, time.Minute))
	RegisterRoutes(router.Group("/admin/v1"), NewHandler(svc), middleware.AdminOnly(testSecret), limiter)
	return router
}

func call(router *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestLoginAndMeOverHTTP(t *testing.T) {
	router := setupRouter(t, 10)

	w, body := call(router, http.MethodPost, "/admin/v1/auth/login/email", `{"email":"ops@awaaz.app","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]any)
	token := data["accessToken"].(string)
	assert.NotContains(t, data["admin"].(map[string]any), "password")

	w, body = call(router, http.MethodGet, "/admin/v1/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops@awaaz.app", body["data"].(map[string]any)["email"])

	w, _ = call(router, http.MethodGet, "/admin/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = call(router, http.MethodPost, "/admin/v1/auth/login/email", `{"email":"ops@awaaz.app","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_FAILED", body["code"])

	w, _ = call(router, http.MethodPost, "/admin/v1/auth/login/email", `{"email":"not-an-email"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	router := setupRouter(t, 2)
	payload := `{"email":"ops@awaaz.app","password":"nope"}`

	for i := 0; i < 2; i++ {
		w, _ := call(router, http.MethodPost, "/admin/v1/auth/login/email", payload, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w, body := call(router, http.MethodPost, "/admin/v1/auth/login/email", payload, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", body["code"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
