// AngelaMos | 2026
// operation_test.go

package calculation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		typ    Type
		inputs []float64
		want   float64
	}{
		{"addition", TypeAddition, []float64{1, 2, 3}, 6},
		{"addition negative", TypeAddition, []float64{-1.5, 2.5}, 1},
		{"subtraction folds left", TypeSubtraction, []float64{10, 3, 2}, 5},
		{"multiplication", TypeMultiplication, []float64{2, 3, 4}, 24},
		{"division folds left", TypeDivision, []float64{100, 5, 2}, 10},
		{"division fractional", TypeDivision, []float64{1, 4}, 0.25},
		{"exponentiation pair", TypeExponentiation, []float64{2, 3}, 8},
		{"exponentiation folds left", TypeExponentiation, []float64{2, 3, 2}, 64},
		{"exponentiation negative power", TypeExponentiation, []float64{2, -2}, 0.25},
		{"exponentiation fractional power", TypeExponentiation, []float64{16, 0.5}, 4},
		{"modulus pair", TypeModulus, []float64{10, 3}, 1},
		{"modulus folds left", TypeModulus, []float64{100, 30, 7}, 3},
		{"minimum", TypeMinimum, []float64{5, -2, 9, 3}, -2},
		{"maximum", TypeMaximum, []float64{5, -2, 9, 3}, 9},
		{"average", TypeAverage, []float64{1, 2, 3, 4}, 2.5},
		{"average pair", TypeAverage, []float64{2, 3}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Evaluate(tt.typ, tt.inputs)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     Type
		inputs  []float64
		wantErr error
	}{
		{"division by zero", TypeDivision, []float64{10, 0}, ErrDivisionByZero},
		{"division by zero mid-fold", TypeDivision, []float64{10, 2, 0}, ErrDivisionByZero},
		{"modulus by zero", TypeModulus, []float64{10, 0}, ErrModulusByZero},
		{"modulus by zero mid-fold", TypeModulus, []float64{10, 3, 0}, ErrModulusByZero},
		{"single input", TypeAddition, []float64{1}, ErrTooFewInputs},
		{"empty input", TypeAddition, []float64{}, ErrTooFewInputs},
		{"nil input", TypeAverage, nil, ErrTooFewInputs},
		{"unknown type", Type("logarithm"), []float64{1, 2}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Evaluate(tt.typ, tt.inputs)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	t.Parallel()

	inputs := []float64{7, 3, 2}

	first, err := Evaluate(TypeModulus, inputs)
	require.NoError(t, err)

	for range 10 {
		got, err := Evaluate(TypeModulus, inputs)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{
		TypeAddition, TypeSubtraction, TypeMultiplication, TypeDivision,
		TypeExponentiation, TypeModulus, TypeMinimum, TypeMaximum,
		TypeAverage,
	} {
		got, err := ParseType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseType("sqrt")
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ParseType("")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParseInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []float64
		wantErr bool
	}{
		{"numbers", `[1, 2.5, -3]`, []float64{1, 2.5, -3}, false},
		{"empty array", `[]`, []float64{}, false},
		{"strings", `["1", "2"]`, nil, true},
		{"mixed", `[1, "two"]`, nil, true},
		{"object", `{"a": 1}`, nil, true},
		{"bare number", `42`, nil, true},
		{"null", `null`, nil, true},
		{"missing", ``, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseInputs(json.RawMessage(tt.raw))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotNumberList)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	calc, err := New(TypeAddition, "user-1", []float64{1, 2})
	require.NoError(t, err)

	assert.NotEmpty(t, calc.ID)
	assert.Equal(t, "user-1", calc.UserID)
	assert.Equal(t, TypeAddition, calc.Type)
	assert.Zero(t, calc.Result)

	result, err := calc.Evaluate()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, result, 1e-9)
	assert.InDelta(t, 3.0, calc.Result, 1e-9)
}

func TestNew_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := New(Type("factorial"), "user-1", []float64{1, 2})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInputs_ScanValue(t *testing.T) {
	t.Parallel()

	original := Inputs{1, 2.5, -3}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned Inputs
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)

	require.Error(t, scanned.Scan(42))
}
