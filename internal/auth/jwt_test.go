// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/calcledger/internal/config"
	"github.com/carterperez-dev/calcledger/internal/core"
	"github.com/carterperez-dev/calcledger/internal/middleware"
)

func newTestJWTManager(t *testing.T, profileClaims bool) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privatePath,
		PublicKeyPath:      publicPath,
		AccessTokenExpire:  30 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
		Issuer:             "calcledger",
		Audience:           "calcledger-api",
		ProfileClaims:      profileClaims,
	})
	require.NoError(t, err)

	return manager
}

func TestAccessToken_MinimalClaims(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, false)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "u-1",
		Role:   "user",
		Profile: &middleware.ProfileClaims{
			Username: "ada",
			Email:    "ada@example.com",
		},
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.JTI)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
	// profile claims disabled: the profile never reaches the token
	assert.Nil(t, claims.Profile)
}

func TestAccessToken_ProfileClaims(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, true)

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "u-1",
		Role:   "admin",
		Profile: &middleware.ProfileClaims{
			Username:   "ada",
			Email:      "ada@example.com",
			FirstName:  "Ada",
			LastName:   "Lovelace",
			IsActive:   true,
			IsVerified: true,
			CreatedAt:  createdAt,
			UpdatedAt:  updatedAt,
		},
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	require.NotNil(t, claims.Profile)
	assert.Equal(t, "ada", claims.Profile.Username)
	assert.Equal(t, "ada@example.com", claims.Profile.Email)
	assert.Equal(t, "Ada", claims.Profile.FirstName)
	assert.Equal(t, "Lovelace", claims.Profile.LastName)
	assert.True(t, claims.Profile.IsActive)
	assert.True(t, claims.Profile.IsVerified)
	assert.True(t, claims.Profile.CreatedAt.Equal(createdAt))
	assert.True(t, claims.Profile.UpdatedAt.Equal(updatedAt))
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, false)

	_, err := manager.VerifyAccessToken(
		context.Background(),
		"not-a-token",
	)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	t.Parallel()

	signer := newTestJWTManager(t, false)
	verifier := newTestJWTManager(t, false)

	token, err := signer.CreateAccessToken(AccessTokenClaims{
		UserID: "u-1",
		Role:   "user",
	})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestCreateRefreshToken(t *testing.T) {
	t.Parallel()

	manager := newTestJWTManager(t, false)

	data, err := manager.CreateRefreshToken("u-1", "")
	require.NoError(t, err)

	assert.NotEmpty(t, data.Token)
	assert.NotEmpty(t, data.FamilyID)
	assert.True(t, data.ExpiresAt.After(time.Now()))

	assert.True(t, manager.VerifyRefreshTokenHash(data.Token, data.Hash))
	assert.False(t, manager.VerifyRefreshTokenHash("other", data.Hash))

	// an explicit family id is preserved across rotations
	rotated, err := manager.CreateRefreshToken("u-1", data.FamilyID)
	require.NoError(t, err)
	assert.Equal(t, data.FamilyID, rotated.FamilyID)
}
