// AngelaMos | 2026
// service_test.go

package calculation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/calcledger/internal/core"
)

type fakeCalcRepo struct {
	createCalls int
	created     *Calculation
	byID        map[string]*Calculation
}

func newFakeCalcRepo() *fakeCalcRepo {
	return &fakeCalcRepo{byID: map[string]*Calculation{}}
}

func (f *fakeCalcRepo) Create(ctx context.Context, calc *Calculation) error {
	f.createCalls++
	f.created = calc
	f.byID[calc.ID] = calc
	return nil
}

func (f *fakeCalcRepo) GetByID(
	ctx context.Context,
	id, userID string,
) (*Calculation, error) {
	calc, ok := f.byID[id]
	if !ok || calc.UserID != userID {
		return nil, core.ErrNotFound
	}
	return calc, nil
}

func (f *fakeCalcRepo) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Calculation, int, error) {
	var calcs []Calculation
	for _, c := range f.byID {
		if c.UserID == userID {
			calcs = append(calcs, *c)
		}
	}
	return calcs, len(calcs), nil
}

func (f *fakeCalcRepo) Delete(ctx context.Context, id, userID string) error {
	calc, ok := f.byID[id]
	if !ok || calc.UserID != userID {
		return core.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestServiceCreate_EvaluatesBeforePersisting(t *testing.T) {
	t.Parallel()

	repo := newFakeCalcRepo()
	svc := NewService(repo)

	calc, err := svc.Create(
		context.Background(),
		"u-1",
		TypeDivision,
		[]float64{100, 4},
	)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, calc.Result, 1e-9)
	assert.Equal(t, 1, repo.createCalls)
}

func TestServiceCreate_FailedEvaluationLeavesNoRow(t *testing.T) {
	t.Parallel()

	repo := newFakeCalcRepo()
	svc := NewService(repo)

	_, err := svc.Create(
		context.Background(),
		"u-1",
		TypeDivision,
		[]float64{1, 0},
	)
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.Zero(t, repo.createCalls)
}

func TestServiceGet_OwnerScoped(t *testing.T) {
	t.Parallel()

	repo := newFakeCalcRepo()
	svc := NewService(repo)

	calc, err := svc.Create(
		context.Background(),
		"u-1",
		TypeAddition,
		[]float64{1, 2},
	)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), calc.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, calc.ID, got.ID)

	// another user's lookup must behave exactly like a missing record
	_, err = svc.Get(context.Background(), calc.ID, "u-2")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceDelete_OwnerScoped(t *testing.T) {
	t.Parallel()

	repo := newFakeCalcRepo()
	svc := NewService(repo)

	calc, err := svc.Create(
		context.Background(),
		"u-1",
		TypeMaximum,
		[]float64{1, 9, 5},
	)
	require.NoError(t, err)

	require.ErrorIs(
		t,
		svc.Delete(context.Background(), calc.ID, "u-2"),
		core.ErrNotFound,
	)
	require.NoError(t, svc.Delete(context.Background(), calc.ID, "u-1"))
	require.ErrorIs(
		t,
		svc.Delete(context.Background(), calc.ID, "u-1"),
		core.ErrNotFound,
	)
}

func TestServiceOperations_RequireUser(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCalcRepo())

	_, err := svc.Get(context.Background(), "c-1", "")
	require.ErrorIs(t, err, core.ErrUnauthorized)

	_, _, err = svc.List(context.Background(), "", ListParams{})
	require.ErrorIs(t, err, core.ErrUnauthorized)

	require.ErrorIs(
		t,
		svc.Delete(context.Background(), "c-1", ""),
		core.ErrUnauthorized,
	)
}
