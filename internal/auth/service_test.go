// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/calcledger/internal/core"
)

type fakeUserProvider struct {
	user *UserInfo

	updatePasswordCalls int
	lastPasswordHash    string
}

func (f *fakeUserProvider) GetByLogin(
	ctx context.Context,
	identifier string,
) (*UserInfo, error) {
	if f.user == nil ||
		(identifier != f.user.Username && identifier != f.user.Email) {
		return nil, core.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUserProvider) GetByID(
	ctx context.Context,
	id string,
) (*UserInfo, error) {
	if f.user == nil || f.user.ID != id {
		return nil, core.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUserProvider) Create(
	ctx context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	return f.user, nil
}

func (f *fakeUserProvider) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	f.updatePasswordCalls++
	f.lastPasswordHash = passwordHash
	f.user.PasswordHash = passwordHash
	return nil
}

type fakeTokenRepo struct {
	revokeAllCalls     int
	deleteExpiredCalls int
	expiredCount       int64
	tokens             map[string]*RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*RefreshToken{}}
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *RefreshToken) error {
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepo) FindByHash(
	ctx context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	token, ok := f.tokens[tokenHash]
	if !ok {
		return nil, core.ErrNotFound
	}
	return token, nil
}

func (f *fakeTokenRepo) FindByID(
	ctx context.Context,
	id string,
) (*RefreshToken, error) {
	for _, token := range f.tokens {
		if token.ID == id {
			return token, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeTokenRepo) MarkAsUsed(
	ctx context.Context,
	id, replacedByID string,
) error {
	return nil
}

func (f *fakeTokenRepo) RevokeByID(ctx context.Context, id string) error {
	return nil
}

func (f *fakeTokenRepo) RevokeByFamilyID(
	ctx context.Context,
	familyID string,
) error {
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(
	ctx context.Context,
	userID string,
) error {
	f.revokeAllCalls++
	return nil
}

func (f *fakeTokenRepo) GetActiveSessionsForUser(
	ctx context.Context,
	userID string,
) ([]RefreshToken, error) {
	return nil, nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.deleteExpiredCalls++
	return f.expiredCount, nil
}

func newPasswordService(
	t *testing.T,
	currentPassword string,
) (*Service, *fakeUserProvider, *fakeTokenRepo) {
	t.Helper()

	hash, err := core.HashPassword(currentPassword)
	require.NoError(t, err)

	provider := &fakeUserProvider{
		user: &UserInfo{
			ID:           "u-1",
			Username:     "ada",
			Email:        "ada@example.com",
			PasswordHash: hash,
			Role:         "user",
		},
	}
	repo := newFakeTokenRepo()

	return NewService(repo, nil, provider, nil), provider, repo
}

func TestChangePassword_IncorrectCurrent(t *testing.T) {
	t.Parallel()

	svc, provider, repo := newPasswordService(t, "oldpass123")

	err := svc.ChangePassword(
		context.Background(),
		"u-1",
		"wrongpass",
		"newpass456",
	)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, provider.updatePasswordCalls)
	assert.Zero(t, repo.revokeAllCalls)
}

func TestChangePassword_TooShort(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newPasswordService(t, "oldpass123")

	err := svc.ChangePassword(context.Background(), "u-1", "oldpass123", "abc")
	require.ErrorIs(t, err, ErrWeakPassword)
	assert.Zero(t, provider.updatePasswordCalls)
}

func TestChangePassword_Unchanged(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newPasswordService(t, "oldpass123")

	err := svc.ChangePassword(
		context.Background(),
		"u-1",
		"oldpass123",
		"oldpass123",
	)
	require.ErrorIs(t, err, ErrUnchangedPassword)
	assert.Zero(t, provider.updatePasswordCalls)
}

func TestChangePassword_Success(t *testing.T) {
	t.Parallel()

	svc, provider, repo := newPasswordService(t, "oldpass123")

	err := svc.ChangePassword(
		context.Background(),
		"u-1",
		"oldpass123",
		"newpass456",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.updatePasswordCalls)
	assert.Equal(t, 1, repo.revokeAllCalls)

	valid, _, err := core.VerifyPasswordWithRehash(
		"newpass456",
		provider.lastPasswordHash,
	)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestLogin_UnknownIdentifier(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPasswordService(t, "oldpass123")

	_, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "nobody",
		Password:   "whatever1",
	}, "ua", "127.0.0.1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPasswordService(t, "oldpass123")

	_, err := svc.Login(context.Background(), LoginRequest{
		Identifier: "ada",
		Password:   "wrongpass",
	}, "ua", "127.0.0.1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPurgeExpiredTokens(t *testing.T) {
	t.Parallel()

	svc, _, repo := newPasswordService(t, "oldpass123")
	repo.expiredCount = 3

	deleted, err := svc.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, 1, repo.deleteExpiredCalls)
}

func TestRevocation_DisabledCacheIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPasswordService(t, "oldpass123")

	require.NoError(
		t,
		svc.RevokeAccessToken(
			context.Background(),
			"some-jti",
			time.Now().Add(time.Hour),
		),
	)

	revoked, err := svc.IsAccessTokenBlacklisted(
		context.Background(),
		"some-jti",
	)
	require.NoError(t, err)
	assert.False(t, revoked)
}
