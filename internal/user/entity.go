// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string     `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	IsActive     bool       `db:"is_active"`
	IsVerified   bool       `db:"is_verified"`
	Role         string     `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	// Nullable: rows created before the column existed stay null until
	// their next password change.
	PasswordUpdatedAt *time.Time `db:"password_updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ProfileChanges is a partial profile update: nil fields are left
// untouched.
type ProfileChanges struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
}

func (c ProfileChanges) Empty() bool {
	return c.FirstName == nil &&
		c.LastName == nil &&
		c.Username == nil &&
		c.Email == nil
}
