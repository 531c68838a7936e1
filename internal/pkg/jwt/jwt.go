package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInsufficientRole   = errors.New("insufficient permissions")
	ErrMissingTokenConfig = errors.New("JWT config is required")
)

// Claims represents JWT claims of an admin session
type Claims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Config represents JWT configuration
type Config struct {
	Secret        string
	AccessExpiry  time.Duration
	Issuer        string
	Audience      string
	SigningMethod jwt.SigningMethod
}

// DefaultConfig returns default JWT configuration
func DefaultConfig(secret string, expireHours int) *Config {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &Config{
		Secret:        secret,
		AccessExpiry:  time.Duration(expireHours) * time.Hour,
		Issuer:        "aawaz-admin-api",
		Audience:      "aawaz-admin-hub",
		SigningMethod: jwt.SigningMethodHS256,
	}
}

// GenerateToken generates a signed access token carrying the admin role
func GenerateToken(adminID, email, role string, cfg *Config) (string, error) {
	if cfg == nil {
		return "", ErrMissingTokenConfig
	}

	now := time.Now()
	claims := &Claims{
		AdminID: adminID,
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
			Audience:  []string{cfg.Audience},
			Subject:   adminID,
		},
	}

	token := jwt.NewWithClaims(cfg.SigningMethod, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates and parses a JWT token
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenWithRole validates token and checks if it carries one of the allowed roles
func ValidateTokenWithRole(tokenString, secret string, allowedRoles ...string) (*Claims, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	if len(allowedRoles) == 0 {
		return claims, nil
	}
	for _, role := range allowedRoles {
		if claims.Role == role {
			return claims, nil
		}
	}

	return claims, ErrInsufficientRole
}
