package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	cfg := DefaultConfig("test-secret", 1)

	token, err := GenerateToken("admin-1", "root@aawaz.app", "superadmin", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims.AdminID)
	require.Equal(t, "root@aawaz.app", claims.Email)
	require.Equal(t, "superadmin", claims.Role)
	require.Equal(t, "admin-1", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("admin-1", "root@aawaz.app", "admin", DefaultConfig("a", 1))
	require.NoError(t, err)

	_, err = ValidateToken(token, "b")
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	cfg := DefaultConfig("s", 1)
	cfg.AccessExpiry = -time.Minute

	token, err := GenerateToken("admin-1", "root@aawaz.app", "admin", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "s")
	require.Error(t, err)
}

func TestValidateTokenWithRole(t *testing.T) {
	cfg := DefaultConfig("s", 1)
	token, err := GenerateToken("admin-1", "mod@aawaz.app", "moderator", cfg)
	require.NoError(t, err)

	_, err = ValidateTokenWithRole(token, "s", "admin", "moderator")
	require.NoError(t, err)

	_, err = ValidateTokenWithRole(token, "s", "superadmin")
	require.ErrorIs(t, err, ErrInsufficientRole)
}

func TestGenerateRequiresConfig(t *testing.T) {
	_, err := GenerateToken("a", "b", "c", nil)
	require.ErrorIs(t, err, ErrMissingTokenConfig)
}
