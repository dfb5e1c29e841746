// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/calcledger/internal/auth"
	"github.com/carterperez-dev/calcledger/internal/core"
)

type fakeRepo struct {
	users map[string]*User

	createErr error

	updateProfileCalls int
	lastChanges        ProfileChanges
	updateProfileErr   error

	updatePasswordCalls int
	lastPasswordHash    string
}

func newFakeRepo(users ...*User) *fakeRepo {
	r := &fakeRepo{users: map[string]*User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, other := range f.users {
		if other.Username == u.Username {
			return core.ErrDuplicateUsername
		}
		if other.Email == u.Email {
			return core.ErrDuplicateEmail
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) UpdateProfile(
	ctx context.Context,
	id string,
	changes ProfileChanges,
) (*User, error) {
	f.updateProfileCalls++
	f.lastChanges = changes
	if f.updateProfileErr != nil {
		return nil, f.updateProfileErr
	}

	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}

	// uniqueness against all other users, as the constraints enforce
	for otherID, other := range f.users {
		if otherID == id {
			continue
		}
		if changes.Username != nil && other.Username == *changes.Username {
			return nil, core.ErrDuplicateUsername
		}
		if changes.Email != nil && other.Email == *changes.Email {
			return nil, core.ErrDuplicateEmail
		}
	}

	if changes.FirstName != nil {
		u.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		u.LastName = *changes.LastName
	}
	if changes.Username != nil {
		u.Username = *changes.Username
	}
	if changes.Email != nil {
		u.Email = *changes.Email
	}
	return u, nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	f.updatePasswordCalls++
	f.lastPasswordHash = hash
	if _, ok := f.users[id]; !ok {
		return core.ErrNotFound
	}
	f.users[id].PasswordHash = hash
	return nil
}

func (f *fakeRepo) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	users := make([]User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, len(users), nil
}

func ptr(s string) *string { return &s }

func testUser() *User {
	return &User{
		ID:        "u-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Role:      RoleUser,
	}
}

func TestUpdateProfile_EmptyChangesIsNoOp(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(testUser())
	svc := NewService(repo)

	got, err := svc.UpdateProfile(context.Background(), "u-1", ProfileChanges{})
	require.NoError(t, err)

	assert.Equal(t, "ada", got.Username)
	assert.Zero(t, repo.updateProfileCalls)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(testUser())
	svc := NewService(repo)

	got, err := svc.UpdateProfile(context.Background(), "u-1", ProfileChanges{
		FirstName: ptr("Augusta"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, 1, repo.updateProfileCalls)
	assert.Nil(t, repo.lastChanges.Email)
}

func TestUpdateProfile_LowercasesEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(testUser())
	svc := NewService(repo)

	got, err := svc.UpdateProfile(context.Background(), "u-1", ProfileChanges{
		Email: ptr("Ada.Lovelace@Example.COM"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ada.lovelace@example.com", got.Email)
}

func TestUpdateProfile_DuplicatePassesThrough(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(testUser())
	repo.updateProfileErr = core.ErrDuplicateUsername
	svc := NewService(repo)

	_, err := svc.UpdateProfile(context.Background(), "u-1", ProfileChanges{
		Username: ptr("taken"),
	})
	require.ErrorIs(t, err, core.ErrDuplicateUsername)
}

func TestUpdateProfile_MissingUserID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	_, err := svc.UpdateProfile(context.Background(), "", ProfileChanges{
		Username: ptr("x"),
	})
	require.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpdateProfile_CannotTakeAnotherUsersUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)

	alice, err := svc.Create(context.Background(), auth.CreateUserParams{
		FirstName: "Alice", LastName: "A",
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	bob, err := svc.Create(context.Background(), auth.CreateUserParams{
		FirstName: "Bob", LastName: "B",
		Username: "bob", Email: "bob@example.com",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), bob.ID, ProfileChanges{
		Username: ptr("alice"),
	})
	require.ErrorIs(t, err, core.ErrDuplicateUsername)

	_, err = svc.UpdateProfile(context.Background(), bob.ID, ProfileChanges{
		Email: ptr("Alice@Example.com"),
	})
	require.ErrorIs(t, err, core.ErrDuplicateEmail)

	// setting a field to one's own current value is not a collision
	got, err := svc.UpdateProfile(context.Background(), alice.ID, ProfileChanges{
		Username: ptr("alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestGetByLogin_DispatchesOnIdentifier(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo(testUser())
	svc := NewService(repo)

	byEmail, err := svc.GetByLogin(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)

	byUsername, err := svc.GetByLogin(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byUsername.ID)

	_, err = svc.GetByLogin(context.Background(), "nobody")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreate_AssignsIDAndRole(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)

	info, err := svc.Create(context.Background(), auth.CreateUserParams{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Username:     "grace",
		Email:        "Grace@Example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "grace@example.com", info.Email)
	assert.Equal(t, RoleUser, info.Role)

	stored, err := repo.GetByID(context.Background(), info.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace", stored.Username)
}

func TestGetMe_MissingUserID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	_, err := svc.GetMe(context.Background(), "")
	require.ErrorIs(t, err, core.ErrUnauthorized)
}
