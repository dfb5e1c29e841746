// AngelaMos | 2026
// entity.go

package calculation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Calculation is a single arithmetic request and its computed result,
// owned by the submitting user and immutable once stored.
type Calculation struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Type      Type      `db:"type"`
	Inputs    Inputs    `db:"inputs"`
	Result    float64   `db:"result"`
	CreatedAt time.Time `db:"created_at"`
}

// New builds a calculation bound to a validated operation type without
// evaluating it; Evaluate computes and records the result.
func New(t Type, userID string, inputs []float64) (*Calculation, error) {
	parsed, err := ParseType(string(t))
	if err != nil {
		return nil, err
	}

	return &Calculation{
		ID:     uuid.New().String(),
		UserID: userID,
		Type:   parsed,
		Inputs: Inputs(inputs),
	}, nil
}

// Evaluate runs the bound operation over the inputs and stores the
// result on the record.
func (c *Calculation) Evaluate() (float64, error) {
	result, err := Evaluate(c.Type, c.Inputs)
	if err != nil {
		return 0, err
	}

	c.Result = result
	return result, nil
}

// Inputs is the ordered numeric input list, stored as a JSONB column.
type Inputs []float64

func (i Inputs) Value() (driver.Value, error) {
	data, err := json.Marshal([]float64(i))
	if err != nil {
		return nil, fmt.Errorf("marshal inputs: %w", err)
	}
	return data, nil
}

func (i *Inputs) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan inputs: unsupported type %T", src)
	}

	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("scan inputs: %w", err)
	}

	*i = Inputs(values)
	return nil
}
