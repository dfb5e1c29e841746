// AngelaMos | 2026
// repository_test.go

package user

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/calcledger/internal/core"
)

// The unique constraints are the authority for duplicate prevention:
// a violation raised at commit time must map to the same duplicate
// error the pre-checks produce.
func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username constraint",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "users_username_key",
			},
			want: core.ErrDuplicateUsername,
		},
		{
			name: "email constraint",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "users_email_key",
			},
			want: core.ErrDuplicateEmail,
		},
		{
			name: "wrapped username constraint",
			err: fmt.Errorf("exec: %w", &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "users_username_key",
			}),
			want: core.ErrDuplicateUsername,
		},
		{
			name: "unrecognized constraint",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "refresh_tokens_token_hash_key",
			},
			want: core.ErrDuplicateKey,
		},
		{
			name: "other postgres error",
			err: &pgconn.PgError{
				Code: "23503",
			},
			want: nil,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapUniqueViolation(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tt.want)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
	}

	assert.True(t, core.IsUniqueViolation(pgErr, "users_email_key"))
	assert.True(t, core.IsUniqueViolation(pgErr, ""))
	assert.False(t, core.IsUniqueViolation(pgErr, "users_username_key"))
	assert.False(t, core.IsUniqueViolation(errors.New("boom"), ""))
}
