// AngelaMos | 2026
// operation.go

package calculation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Type selects which arithmetic operation a calculation performs. The
// set is closed: adding an operation means adding a constant and an
// entry in the operations table.
type Type string

const (
	TypeAddition       Type = "addition"
	TypeSubtraction    Type = "subtraction"
	TypeMultiplication Type = "multiplication"
	TypeDivision       Type = "division"
	TypeExponentiation Type = "exponentiation"
	TypeModulus        Type = "modulus"
	TypeMinimum        Type = "minimum"
	TypeMaximum        Type = "maximum"
	TypeAverage        Type = "average"
)

var (
	ErrUnsupportedType = errors.New("unsupported calculation type")
	ErrNotNumberList   = errors.New("inputs must be a list of numbers")
	ErrTooFewInputs    = errors.New(
		"inputs must be a list with at least two numbers",
	)
	ErrDivisionByZero = errors.New("cannot divide by zero")
	ErrModulusByZero  = errors.New("cannot perform modulus by zero")
)

type evalFunc func(inputs []float64) (float64, error)

// fold lifts a binary operator into a left-to-right reduction:
// ((a0 op a1) op a2) op ...
func fold(op func(acc, next float64) (float64, error)) evalFunc {
	return func(inputs []float64) (float64, error) {
		acc := inputs[0]
		for _, next := range inputs[1:] {
			var err error
			acc, err = op(acc, next)
			if err != nil {
				return 0, err
			}
		}
		return acc, nil
	}
}

var operations = map[Type]evalFunc{
	TypeAddition: fold(func(acc, next float64) (float64, error) {
		return acc + next, nil
	}),
	TypeSubtraction: fold(func(acc, next float64) (float64, error) {
		return acc - next, nil
	}),
	TypeMultiplication: fold(func(acc, next float64) (float64, error) {
		return acc * next, nil
	}),
	TypeDivision: fold(func(acc, next float64) (float64, error) {
		if next == 0 {
			return 0, ErrDivisionByZero
		}
		return acc / next, nil
	}),
	TypeExponentiation: fold(func(acc, next float64) (float64, error) {
		return math.Pow(acc, next), nil
	}),
	TypeModulus: fold(func(acc, next float64) (float64, error) {
		if next == 0 {
			return 0, ErrModulusByZero
		}
		return math.Mod(acc, next), nil
	}),
	// Minimum and maximum are order-independent reductions, not folds
	// over a binary operator; average is a whole-list aggregate.
	TypeMinimum: func(inputs []float64) (float64, error) {
		minVal := inputs[0]
		for _, v := range inputs[1:] {
			if v < minVal {
				minVal = v
			}
		}
		return minVal, nil
	},
	TypeMaximum: func(inputs []float64) (float64, error) {
		maxVal := inputs[0]
		for _, v := range inputs[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		return maxVal, nil
	},
	TypeAverage: func(inputs []float64) (float64, error) {
		sum := 0.0
		for _, v := range inputs {
			sum += v
		}
		return sum / float64(len(inputs)), nil
	},
}

// ParseType validates a client-supplied type tag.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := operations[t]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedType)
	}
	return t, nil
}

// ParseInputs decodes the raw JSON inputs field. Anything that is not
// a JSON array of numbers is rejected.
func ParseInputs(raw json.RawMessage) ([]float64, error) {
	if len(raw) == 0 {
		return nil, ErrNotNumberList
	}

	var inputs []float64
	if err := json.Unmarshal(raw, &inputs); err != nil {
		return nil, ErrNotNumberList
	}

	if inputs == nil {
		return nil, ErrNotNumberList
	}

	return inputs, nil
}

// Evaluate computes the result for a type tag over an input list. It
// is a pure function: no I/O, no state, identical arguments always
// yield identical results.
func Evaluate(t Type, inputs []float64) (float64, error) {
	op, ok := operations[t]
	if !ok {
		return 0, fmt.Errorf("%q: %w", string(t), ErrUnsupportedType)
	}

	if len(inputs) < 2 {
		return 0, ErrTooFewInputs
	}

	return op(inputs)
}
