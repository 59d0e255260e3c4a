package shared

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every error that rejects caller-supplied
// configuration before a search starts.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets callers test any validation failure with errors.Is(err, ErrInvalidConfiguration).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every failing field of one input.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(e))
	for _, v := range e {
		msg += " " + v.Error() + ";"
	}
	return msg
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Invariant errors

// InvariantViolationError reports an internal state the model tables should never
// produce. Production code paths recover from it; tests treat it as fatal.
type InvariantViolationError struct {
	*DomainError
	Invariant string
}

func NewInvariantViolationError(invariant, message string) *InvariantViolationError {
	return &InvariantViolationError{
		DomainError: &DomainError{Message: fmt.Sprintf("invariant %s violated: %s", invariant, message)},
		Invariant:   invariant,
	}
}
