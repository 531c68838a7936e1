package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/pkg/jwt"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/validator"
	apperrors "github.com/xyz-asif/awaaz-admin/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)

type Store interface {
	Create(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Admin, error)
	TouchLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type Service struct {
	store    Store
	tokenCfg *jwt.Config
	now      func() time.Time
}

func NewService(store Store, tokenCfg *jwt.Config) *Service {
	return &Service{store: store, tokenCfg: tokenCfg, now: time.Now}
}

// Login checks the password and issues an access token. Unknown emails,
// wrong passwords and disabled accounts all get the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.store.GetByEmail(ctx, validator.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errBadCredentials
	}
	if !admin.Active {
		return nil, errBadCredentials
	}

	token, err := jwt.GenerateToken(admin.ID.Hex(), admin.Email, admin.Role, s.tokenCfg)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := s.now().UTC()
	if err := s.store.TouchLogin(ctx, admin.ID, now); err != nil {
		logger.Warn("failed to record admin login", zap.String("adminId", admin.ID.Hex()), zap.Error(err))
	}
	admin.LastLoginAt = &now

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenCfg.AccessExpiry.Seconds()),
		Admin:       admin,
	}, nil
}

func (s *Service) Me(ctx context.Context, adminID string) (*Admin, error) {
	id, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return nil, fmt.Errorf("admin id %q: %w", adminID, apperrors.ErrUnauthorized)
	}
	return s.store.GetByID(ctx, id)
}

// CreateAdmin hashes the password and stores a new active admin
func (s *Service) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*Admin, error) {
	if err := ValidateCreateAdmin(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	admin := &Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
