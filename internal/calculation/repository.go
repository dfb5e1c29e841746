// AngelaMos | 2026
// repository.go

package calculation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/calcledger/internal/core"
)

type Repository interface {
	Create(ctx context.Context, calc *Calculation) error
	GetByID(ctx context.Context, id, userID string) (*Calculation, error)
	ListByUser(
		ctx context.Context,
		userID string,
		params ListParams,
	) ([]Calculation, int, error)
	Delete(ctx context.Context, id, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, calc *Calculation) error {
	query := `
		INSERT INTO calculations (id, user_id, type, inputs, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &calc.CreatedAt, query,
		calc.ID,
		calc.UserID,
		calc.Type,
		calc.Inputs,
		calc.Result,
	)
	if err != nil {
		return fmt.Errorf("create calculation: %w", err)
	}

	return nil
}

// GetByID is owner-scoped: another user's record is indistinguishable
// from a missing one.
func (r *repository) GetByID(
	ctx context.Context,
	id, userID string,
) (*Calculation, error) {
	query := `
		SELECT id, user_id, type, inputs, result, created_at
		FROM calculations
		WHERE id = $1 AND user_id = $2`

	var calc Calculation
	err := r.db.GetContext(ctx, &calc, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get calculation: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get calculation: %w", err)
	}

	return &calc, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Calculation, int, error) {
	params.Normalize()

	countQuery := `SELECT COUNT(*) FROM calculations WHERE user_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count calculations: %w", err)
	}

	query := `
		SELECT id, user_id, type, inputs, result, created_at
		FROM calculations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var calcs []Calculation
	err := r.db.SelectContext(
		ctx,
		&calcs,
		query,
		userID,
		params.PageSize,
		params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list calculations: %w", err)
	}

	return calcs, total, nil
}

func (r *repository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM calculations WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete calculation: %w", core.ErrNotFound)
	}

	return nil
}
