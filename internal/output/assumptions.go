package output

import (
	"github.com/rpgo/pension-tracker/internal/domain"
)

// DefaultAssumptions lists the modelling assumptions rendered when a report carries none.
var DefaultAssumptions = domain.DefaultAssumptions().GenerateAssumptions()

// reportAssumptions prefers the assumptions generated from the report's own plan.
func reportAssumptions(r *domain.ProjectionReport) []string {
	if len(r.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return r.Assumptions
}
