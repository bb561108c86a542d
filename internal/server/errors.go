package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrStepNotFound indicates the requested step does not exist
type ErrStepNotFound struct {
	StepID uuid.UUID
}

func (e *ErrStepNotFound) Error() string {
	return fmt.Sprintf("step not found: %s", e.StepID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAssistantUnavailable indicates the step assistant is not configured
type ErrAssistantUnavailable struct{}

func (e *ErrAssistantUnavailable) Error() string {
	return "step assistant is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrStepNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrAssistantUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
