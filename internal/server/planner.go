package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/domain"
	"github.com/rpgo/pension-tracker/internal/output"
	"github.com/rpgo/pension-tracker/internal/planner"
)

func plannerResponse(snap planner.Snapshot) PlannerResponse {
	resp := PlannerResponse{Snapshot: snap, Lines: output.PresentationLines(snap.Report())}
	if snap.Err != nil {
		resp.ErrorCode = calculation.ErrorCode(snap.Err)
		resp.ErrorMessage = snap.Err.Error()
	}
	return resp
}

// getPlanner handles GET /api/v1/planner
func (s *Server) getPlanner(c *gin.Context) {
	c.JSON(http.StatusOK, plannerResponse(s.planner.Snapshot()))
}

// getFields handles GET /api/v1/planner/fields
func (s *Server) getFields(c *gin.Context) {
	inputs := s.planner.Snapshot().Inputs
	states := make([]FieldState, 0, len(planner.Fields))
	for _, f := range planner.Fields {
		v, _ := planner.FieldValue(inputs, f.Name)
		states = append(states, FieldState{Field: f, Value: v})
	}
	c.JSON(http.StatusOK, states)
}

// setField handles PUT /api/v1/planner/fields/:name
func (s *Server) setField(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	snap, err := s.planner.SetField(c.Param("name"), req.Value)
	if errors.Is(err, planner.ErrUnknownField) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown field", Message: err.Error(), Code: CodeUnknownField})
		return
	}
	c.JSON(http.StatusOK, plannerResponse(snap))
}

// setInputs handles PUT /api/v1/planner/inputs
func (s *Server) setInputs(c *gin.Context) {
	var in domain.Contributions
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	cfg := s.planner.Configuration()
	cfg.Contributions = in
	if err := s.parser.ValidateConfiguration(cfg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid inputs", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, plannerResponse(s.planner.SetInputs(in)))
}

// setAssumptions handles PUT /api/v1/planner/assumptions
func (s *Server) setAssumptions(c *gin.Context) {
	a := domain.DefaultAssumptions()
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	cfg := s.planner.Configuration()
	cfg.Assumptions = a
	if err := s.parser.ValidateConfiguration(cfg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid assumptions", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	c.JSON(http.StatusOK, plannerResponse(s.planner.SetAssumptions(a)))
}

// addPot handles POST /api/v1/planner/pots
func (s *Server) addPot(c *gin.Context) {
	var req AddPotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	pot, snap, err := s.planner.AddPot(req.Name, req.Amount)
	if err != nil {
		writePotError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AddPotResponse{Pot: pot, Planner: plannerResponse(snap)})
}

// updatePot handles PATCH /api/v1/planner/pots/:id
func (s *Server) updatePot(c *gin.Context) {
	id, ok := potID(c)
	if !ok {
		return
	}
	var req UpdatePotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: err.Error(), Code: CodeInvalidRequest})
		return
	}
	snap, err := s.planner.UpdatePot(id, req.Field, req.Value)
	if err != nil {
		writePotError(c, err)
		return
	}
	c.JSON(http.StatusOK, plannerResponse(snap))
}

// removePot handles DELETE /api/v1/planner/pots/:id
func (s *Server) removePot(c *gin.Context) {
	id, ok := potID(c)
	if !ok {
		return
	}
	snap, err := s.planner.RemovePot(id)
	if err != nil {
		writePotError(c, err)
		return
	}
	c.JSON(http.StatusOK, plannerResponse(snap))
}

// calculate handles POST /api/v1/planner/calculate
func (s *Server) calculate(c *gin.Context) {
	c.JSON(http.StatusOK, plannerResponse(s.planner.Recalculate()))
}

// plannerReport handles GET /api/v1/planner/report?format=
func (s *Server) plannerReport(c *gin.Context) {
	f, ok := lookupFormat(c)
	if !ok {
		return
	}
	render(c, f, s.planner.Snapshot().Report())
}

func potID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pot id", Message: err.Error(), Code: CodeInvalidRequest})
		return 0, false
	}
	return id, true
}

func writePotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "pension pot not found", Message: err.Error(), Code: CodePotNotFound})
	case errors.Is(err, domain.ErrNegativePotAmount), errors.Is(err, domain.ErrUnknownPotField):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pension pot", Message: err.Error(), Code: CodeInvalidPot})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update pension pots", Message: err.Error(), Code: CodeInternal})
	}
}
