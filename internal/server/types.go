package server

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-tracker/internal/domain"
	"github.com/rpgo/pension-tracker/internal/planner"
)

// Error codes returned alongside the projection validation codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodePotNotFound       = "POT_NOT_FOUND"
	CodeInvalidPot        = "INVALID_POT"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code"`
	// Projection is the empty result that replaces any previous one after rejected input.
	Projection *domain.ProjectionResult `json:"projection,omitempty"`
}

// ProjectionRequest is a complete plan submitted for a one-off projection.
// Omitted assumptions use the defaults; pots without an id are numbered after the highest id.
type ProjectionRequest struct {
	Name         string               `json:"name"`
	Inputs       domain.Contributions `json:"inputs"`
	Assumptions  *domain.Assumptions  `json:"assumptions"`
	ExistingPots []domain.ExistingPot `json:"existing_pots"`
}

// ProjectionResponse is returned for a successful projection
type ProjectionResponse struct {
	CalculationID    string                   `json:"calculation_id"`
	StartingPotValue decimal.Decimal          `json:"starting_pot_value"`
	Input            domain.ProjectionInput   `json:"input"`
	Result           domain.ProjectionResult  `json:"result"`
	Summary          domain.ProjectionSummary `json:"summary"`
	Lines            []string                 `json:"lines"`
}

// PlannerResponse is the planner snapshot plus the presentation text
type PlannerResponse struct {
	planner.Snapshot
	ErrorCode    string   `json:"error_code,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Lines        []string `json:"lines"`
}

// FieldState is a form field with its current value
type FieldState struct {
	planner.Field
	Value string `json:"value"`
}

type FieldRequest struct {
	Value string `json:"value"`
}

type AddPotRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type AddPotResponse struct {
	Pot     domain.ExistingPot `json:"pot"`
	Planner PlannerResponse    `json:"planner"`
}

// UpdatePotRequest edits one pot field from raw form text
type UpdatePotRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}
