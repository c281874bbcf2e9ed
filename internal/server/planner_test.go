package server

import (
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plannerBody struct {
	Version          uint64 `json:"version"`
	StartingPotValue string `json:"starting_pot_value"`
	Pots             []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Amount string `json:"amount"`
	} `json:"existing_pots"`
	Result struct {
		Samples         []any  `json:"samples"`
		RequiredLumpSum string `json:"required_lump_sum"`
	} `json:"result"`
	Issues []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"issues"`
	ErrorCode string   `json:"error_code"`
	Lines     []string `json:"lines"`
}

func decodePlanner(t *testing.T, data []byte) plannerBody {
	t.Helper()
	var b plannerBody
	require.NoError(t, json.Unmarshal(data, &b), string(data))
	return b
}

func TestGetPlanner(t *testing.T) {
	s := newTestServer(t)
	rr := do(t, s, http.MethodGet, "/api/v1/planner", "")
	require.Equal(t, http.StatusOK, rr.Code)

	b := decodePlanner(t, rr.Body.Bytes())
	assert.Equal(t, uint64(1), b.Version)
	assert.Equal(t, "10000", b.StartingPotValue)
	assert.Len(t, b.Result.Samples, 57)
	assert.Empty(t, b.ErrorCode)
	assert.Len(t, b.Lines, 3)
}

func TestGetFields(t *testing.T) {
	s := newTestServer(t)
	rr := do(t, s, http.MethodGet, "/api/v1/planner/fields", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var fields []FieldState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fields))
	require.Len(t, fields, 5)
	assert.Equal(t, "Desired Annual Income in Retirement (£)", fields[0].Label)
	assert.Equal(t, "16000", fields[0].Value)
	assert.Equal(t, "65", fields[4].Value)
}

func TestSetField(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPut, "/api/v1/planner/fields/retirement_age", `{"value": "20"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	b := decodePlanner(t, rr.Body.Bytes())
	assert.Equal(t, "INVALID_AGE_RANGE", b.ErrorCode)
	assert.Empty(t, b.Result.Samples)
	assert.Equal(t, "0", b.Result.RequiredLumpSum)
	assert.Contains(t, b.Lines, "Please enter valid inputs to see your pension projections. Ensure retirement age is greater than current age.")
	require.NotEmpty(t, b.Issues)
	assert.Equal(t, "Retirement age must be at least 26", b.Issues[0].Message)

	rr = do(t, s, http.MethodPut, "/api/v1/planner/fields/retirement_age", `{"value": "65 years"}`)
	b = decodePlanner(t, rr.Body.Bytes())
	assert.Empty(t, b.ErrorCode)
	assert.Len(t, b.Result.Samples, 57)

	rr = do(t, s, http.MethodPut, "/api/v1/planner/fields/shoe_size", `{"value": "9"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodeUnknownField, decode(t, rr)["code"])
}

func TestSetField_HugeNegativeAgeKeepsPlannerUsable(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPut, "/api/v1/planner/fields/current_age", `{"value": "-9223372036854775807"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	b := decodePlanner(t, rr.Body.Bytes())
	assert.Equal(t, "INVALID_AGE_RANGE", b.ErrorCode)
	assert.Empty(t, b.Result.Samples)

	rr = do(t, s, http.MethodPut, "/api/v1/planner/fields/current_age", `{"value": "25"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	b = decodePlanner(t, rr.Body.Bytes())
	assert.Empty(t, b.ErrorCode)
	assert.Len(t, b.Result.Samples, 57)
}

func TestSetInputs_RejectsNegativeAge(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPut, "/api/v1/planner/inputs",
		`{"desired_annual_income": 16000, "employer_monthly_contribution": 200, "personal_monthly_contribution": 150, "current_age": -1000000000, "retirement_age": 65}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeInvalidRequest, decode(t, rr)["code"])

	rr = do(t, s, http.MethodGet, "/api/v1/planner", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(1), decodePlanner(t, rr.Body.Bytes()).Version)
}

func TestSetInputsAndAssumptions(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPut, "/api/v1/planner/inputs",
		`{"desired_annual_income": 0, "employer_monthly_contribution": 200, "personal_monthly_contribution": 150, "current_age": 25, "retirement_age": 65}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "INVALID_FINANCIAL_INPUT", decodePlanner(t, rr.Body.Bytes()).ErrorCode)

	rr = do(t, s, http.MethodPut, "/api/v1/planner/assumptions", `{"annual_interest_rate": 0.05, "life_expectancy": 0}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodPut, "/api/v1/planner/assumptions", `{"annual_interest_rate": 0.05}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(3), decodePlanner(t, rr.Body.Bytes()).Version)
}

func TestPotLifecycle(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/api/v1/planner/pots", `{"name": "Old Job", "amount": "5000"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var added struct {
		Pot struct {
			ID int `json:"id"`
		} `json:"pot"`
		Planner plannerBody `json:"planner"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Equal(t, 2, added.Pot.ID)
	assert.Equal(t, "15000", added.Planner.StartingPotValue)
	assert.Contains(t, added.Planner.Lines, "Your existing pension pots contribute £15,000 to your starting balance.")

	rr = do(t, s, http.MethodPatch, "/api/v1/planner/pots/2", `{"field": "amount", "value": "not a number"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "10000", decodePlanner(t, rr.Body.Bytes()).StartingPotValue)

	rr = do(t, s, http.MethodPatch, "/api/v1/planner/pots/2", `{"field": "colour", "value": "red"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeInvalidPot, decode(t, rr)["code"])

	rr = do(t, s, http.MethodPost, "/api/v1/planner/pots", `{"name": "Bad", "amount": -1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodDelete, "/api/v1/planner/pots/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	b := decodePlanner(t, rr.Body.Bytes())
	require.Len(t, b.Pots, 1)
	assert.Equal(t, 2, b.Pots[0].ID)

	rr = do(t, s, http.MethodDelete, "/api/v1/planner/pots/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodePotNotFound, decode(t, rr)["code"])

	rr = do(t, s, http.MethodDelete, "/api/v1/planner/pots/abc", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCalculateAndPlannerReport(t *testing.T) {
	s := newTestServer(t)

	rr := do(t, s, http.MethodPost, "/api/v1/planner/calculate", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint64(2), decodePlanner(t, rr.Body.Bytes()).Version)

	rr = do(t, s, http.MethodGet, "/api/v1/planner/report?format=html", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Example Pension Plan")
	assert.Contains(t, rr.Body.String(), `class="lump-sum-marker"`)

	rr = do(t, s, http.MethodGet, "/api/v1/planner/report", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
}
