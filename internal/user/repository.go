// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/calcledger/internal/core"
)

const userColumns = `
	id, first_name, last_name, username, email, password_hash,
	is_active, is_verified, role, created_at, updated_at,
	password_updated_at`

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(
		ctx context.Context,
		id string,
		changes ProfileChanges,
	) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, first_name, last_name, username, email, password_hash, role
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING is_active, is_verified, created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		if dupErr := mapUniqueViolation(err); dupErr != nil {
			return fmt.Errorf("create user: %w", dupErr)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *repository) getBy(
	ctx context.Context,
	column, value string,
) (*User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE %s = $1`,
		userColumns,
		column,
	)

	var user User
	err := r.db.GetContext(ctx, &user, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by %s: %w", column, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}

	return &user, nil
}

// UpdateProfile applies a partial field set in a single transaction.
// Uniqueness is pre-checked against all other users for a fast failure,
// but the unique constraints remain the authority: a violation raised
// at commit time maps to the same duplicate-field error.
func (r *repository) UpdateProfile(
	ctx context.Context,
	id string,
	changes ProfileChanges,
) (*User, error) {
	var updated User

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if changes.Username != nil {
			taken, err := existsOtherUser(ctx, tx, "username", *changes.Username, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("update profile: %w", core.ErrDuplicateUsername)
			}
		}

		if changes.Email != nil {
			taken, err := existsOtherUser(ctx, tx, "email", *changes.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("update profile: %w", core.ErrDuplicateEmail)
			}
		}

		query := fmt.Sprintf(`
			UPDATE users
			SET first_name = COALESCE($2, first_name),
			    last_name  = COALESCE($3, last_name),
			    username   = COALESCE($4, username),
			    email      = COALESCE($5, email),
			    updated_at = NOW()
			WHERE id = $1
			RETURNING %s`, userColumns)

		err := tx.GetContext(ctx, &updated, query,
			id,
			changes.FirstName,
			changes.LastName,
			changes.Username,
			changes.Email,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update profile: %w", core.ErrNotFound)
		}
		if err != nil {
			if dupErr := mapUniqueViolation(err); dupErr != nil {
				return fmt.Errorf("update profile: %w", dupErr)
			}
			return fmt.Errorf("update profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2,
		    updated_at = NOW(),
		    password_updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	where := "TRUE"
	args := []any{}

	if params.Search != "" {
		where = `(username ILIKE $1 OR email ILIKE $1
			OR first_name ILIKE $1 OR last_name ILIKE $1)`
		args = append(args, "%"+escapeLike(params.Search)+"%")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		where,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func existsOtherUser(
	ctx context.Context,
	tx *sqlx.Tx,
	column, value, excludeID string,
) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM users WHERE %s = $1 AND id <> $2)`,
		column,
	)

	var exists bool
	if err := tx.GetContext(ctx, &exists, query, value, excludeID); err != nil {
		return false, fmt.Errorf("check %s exists: %w", column, err)
	}

	return exists, nil
}

func mapUniqueViolation(err error) error {
	switch {
	case core.IsUniqueViolation(err, "users_username_key"):
		return core.ErrDuplicateUsername
	case core.IsUniqueViolation(err, "users_email_key"):
		return core.ErrDuplicateEmail
	case core.IsUniqueViolation(err, ""):
		return core.ErrDuplicateKey
	default:
		return nil
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
