package calculation

import (
	"errors"
	"fmt"
)

// Validation failures reported by ProjectionEngine.Project. Both are input-correction
// prompts, never faults.
var (
	ErrInvalidAgeRange       = errors.New("invalid age range")
	ErrInvalidFinancialInput = errors.New("invalid financial input")
)

// Machine-readable codes for the validation kinds
const (
	CodeInvalidAgeRange       = "INVALID_AGE_RANGE"
	CodeInvalidFinancialInput = "INVALID_FINANCIAL_INPUT"
)

// ValidationError describes why a projection input was rejected.
// errors.Is matches it against its Kind sentinel.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Code returns the stable code for the error kind
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrInvalidAgeRange:
		return CodeInvalidAgeRange
	case ErrInvalidFinancialInput:
		return CodeInvalidFinancialInput
	default:
		return "INVALID_INPUT"
	}
}

// ErrorCode extracts the validation code from err, or "" if err is not a validation error
func ErrorCode(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code()
	}
	return ""
}

func ageRangeError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: ErrInvalidAgeRange, Field: field, Message: fmt.Sprintf(format, args...)}
}

func financialError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: ErrInvalidFinancialInput, Field: field, Message: fmt.Sprintf(format, args...)}
}
