package domain

// ProjectionReport is everything the presentation layer needs to render a projection
type ProjectionReport struct {
	Name          string            `json:"name,omitempty"`
	CalculationID string            `json:"calculation_id,omitempty"`
	Input         ProjectionInput   `json:"input"`
	Pots          []ExistingPot     `json:"existing_pots"`
	Result        ProjectionResult  `json:"result"`
	Summary       ProjectionSummary `json:"summary"`
	Assumptions   []string          `json:"assumptions"`
	// Set when the input was rejected; Result is then empty.
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// HasProjection reports whether there are samples to render
func (r *ProjectionReport) HasProjection() bool {
	return !r.Result.IsEmpty()
}
