package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDegenerateSimulation = errors.New("degenerate simulation")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateSimulationError is returned when the month loop reaches its
// safety cap while some loans still carry a balance.
type DegenerateSimulationError struct {
	Strategy         Strategy
	Months           int
	UnpaidLoans      []string
	RemainingBalance decimal.Decimal
}

func (e *DegenerateSimulationError) Error() string {
	return fmt.Sprintf("%s plan did not pay off within %d months: %s still owe %s",
		e.Strategy, e.Months, strings.Join(e.UnpaidLoans, ", "), e.RemainingBalance.StringFixed(2))
}

func (e *DegenerateSimulationError) Unwrap() error { return ErrDegenerateSimulation }
