package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidInput        = errors.New("invalid input")
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrStudentNotFound     = errors.New("student not found")
	// ErrRetrieval marks a failed read or write against the backing store.
	ErrRetrieval = errors.New("retrieval error")
)

func retrievalError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrRetrieval, op, cause)
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %d invalid field(s)", ErrInvalidInput.Error(), len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
