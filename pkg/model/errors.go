package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyProcessSet is returned by the engine when given no processes.
var ErrEmptyProcessSet = errors.New("process set is empty")

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the cpusched API and by input validation.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Detail renders the message followed by one line per field error.
func (e *APIError) Detail() string {
	if len(e.Details) == 0 {
		return e.Error()
	}
	var b strings.Builder
	b.WriteString(e.Error())
	for _, d := range e.Details {
		b.WriteString("\n  - ")
		if d.Field != "" {
			b.WriteString(d.Field)
			b.WriteString(": ")
		}
		b.WriteString(d.Message)
	}
	return b.String()
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// NewInternalError wraps err in an INTERNAL_ERROR APIError.
func NewInternalError(err error) *APIError {
	return &APIError{Code: ErrInternal, Message: err.Error()}
}
