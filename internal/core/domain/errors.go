package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCampaignNotFound is returned when a campaign does not exist or
	// the caller does not own it. Callers must not be able to tell the
	// two cases apart.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrOrderNotFound is returned when an order does not exist or the
	// caller is not a participant.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInsufficientBudget is returned when an order's price exceeds the
	// campaign's available budget.
	ErrInsufficientBudget = errors.New("insufficient campaign budget")

	// ErrInvalidTransition is returned when an order operation is not
	// legal for the order's current status or the acting user.
	ErrInvalidTransition = errors.New("invalid order transition")

	// ErrInvariantViolation signals that a budget consistency check
	// failed inside a transaction. It aborts the transaction and is a
	// system fault, not a business error.
	ErrInvariantViolation = errors.New("budget invariant violation")
)

// ValidationError describes malformed input. It is caller-correctable
// and surfaced verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validationf builds a ValidationError for the given field.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
