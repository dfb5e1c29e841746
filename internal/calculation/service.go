// AngelaMos | 2026
// service.go

package calculation

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/calcledger/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the request, evaluates the operation, and persists
// the resulting record. Evaluation happens before any write: a failed
// calculation leaves no row behind.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	calcType Type,
	inputs []float64,
) (*Calculation, error) {
	calc, err := New(calcType, userID, inputs)
	if err != nil {
		return nil, err
	}

	if _, err := calc.Evaluate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, calc); err != nil {
		return nil, err
	}

	return calc, nil
}

func (s *Service) Get(
	ctx context.Context,
	id, userID string,
) (*Calculation, error) {
	if userID == "" {
		return nil, fmt.Errorf("get calculation: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, id, userID)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Calculation, int, error) {
	if userID == "" {
		return nil, 0, fmt.Errorf("list calculations: %w", core.ErrUnauthorized)
	}

	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete calculation: %w", core.ErrUnauthorized)
	}

	return s.repo.Delete(ctx, id, userID)
}
