package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/domain"
	"github.com/rpgo/pension-tracker/internal/output"
)

// configuration turns a request into a validated plan
func (s *Server) configuration(req ProjectionRequest) (*domain.Configuration, error) {
	cfg := domain.NewConfiguration()
	cfg.Name = req.Name
	cfg.Contributions = req.Inputs
	if req.Assumptions != nil {
		cfg.Assumptions = *req.Assumptions
	}
	cfg.ExistingPots = numberPots(req.ExistingPots)
	if err := s.parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// numberPots gives pots without an id the next free id, in order
func numberPots(pots []domain.ExistingPot) []domain.ExistingPot {
	out := make([]domain.ExistingPot, len(pots))
	copy(out, pots)
	highest := 0
	for _, p := range out {
		highest = max(highest, p.ID)
	}
	for i := range out {
		if out[i].ID == 0 {
			highest++
			out[i].ID = highest
		}
	}
	return out
}

// bindProjection decodes and runs a projection request. It writes the 400 response
// itself and returns nil when the request is malformed.
func (s *Server) bindProjection(c *gin.Context) *domain.ProjectionReport {
	var req ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: err.Error(), Code: CodeInvalidRequest})
		return nil
	}
	cfg, err := s.configuration(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid plan", Message: err.Error(), Code: CodeInvalidRequest})
		return nil
	}

	in, res, err := s.engine.ProjectConfiguration(cfg)
	report := calculation.BuildReport(cfg.Name, in, cfg.ExistingPots, cfg.Assumptions, res, err)
	report.CalculationID = uuid.NewString()
	return report
}

// createProjection handles POST /api/v1/projections
func (s *Server) createProjection(c *gin.Context) {
	report := s.bindProjection(c)
	if report == nil {
		return
	}
	if report.ErrorCode != "" {
		s.logger.Warnf("[req] id=%s projection rejected code=%s: %s",
			GetRequestID(c.Request.Context()), report.ErrorCode, report.ErrorMessage)
		empty := domain.EmptyResult()
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:      "invalid projection input",
			Message:    report.ErrorMessage,
			Code:       report.ErrorCode,
			Projection: &empty,
		})
		return
	}
	c.JSON(http.StatusOK, ProjectionResponse{
		CalculationID:    report.CalculationID,
		StartingPotValue: report.Input.StartingPotValue,
		Input:            report.Input,
		Result:           report.Result,
		Summary:          report.Summary,
		Lines:            output.SummaryLines(report),
	})
}

// createProjectionReport handles POST /api/v1/projections/report?format=
// Rejected input still renders, showing the guidance message in place of the chart.
func (s *Server) createProjectionReport(c *gin.Context) {
	f, ok := lookupFormat(c)
	if !ok {
		return
	}
	report := s.bindProjection(c)
	if report == nil {
		return
	}
	render(c, f, report)
}

// listFormats handles GET /api/v1/formats
func (s *Server) listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats": output.AvailableFormatterNames(),
		"aliases": output.AvailableFormatAliases(),
	})
}

func lookupFormat(c *gin.Context) (output.Formatter, bool) {
	f, err := output.LookupFormatter(c.DefaultQuery("format", "json"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported format", Message: err.Error(), Code: CodeUnsupportedFormat})
		return nil, false
	}
	return f, true
}

func render(c *gin.Context, f output.Formatter, report *domain.ProjectionReport) {
	data, err := f.Format(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to render report", Message: err.Error(), Code: CodeInternal})
		return
	}
	c.Data(http.StatusOK, output.ContentType(f), data)
}
