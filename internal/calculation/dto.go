// AngelaMos | 2026
// dto.go

package calculation

import (
	"encoding/json"
	"time"
)

// CreateCalculationRequest keeps inputs raw so the engine can reject a
// non-numeric payload with its own message instead of a generic decode
// error.
type CreateCalculationRequest struct {
	Type   string          `json:"type"   validate:"required"`
	Inputs json.RawMessage `json:"inputs" validate:"required"`
}

type CalculationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Inputs    []float64 `json:"inputs"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type ListParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToCalculationResponse(c *Calculation) CalculationResponse {
	return CalculationResponse{
		ID:        c.ID,
		Type:      string(c.Type),
		Inputs:    []float64(c.Inputs),
		Result:    c.Result,
		CreatedAt: c.CreatedAt,
	}
}

func ToCalculationResponseList(calcs []Calculation) []CalculationResponse {
	responses := make([]CalculationResponse, 0, len(calcs))
	for _, c := range calcs {
		responses = append(responses, ToCalculationResponse(&c))
	}
	return responses
}
