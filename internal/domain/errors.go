package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// travel does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is matched by every *ValidationError via errors.Is.
// Handlers should map this to HTTP 422 Unprocessable Entity, or re-render
// the submitted form with the field messages.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned by the geocoder when the provider cannot be reached,
// times out, or answers with a non-success status.
// Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream error")

// FieldError is one violated rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule a submission violated, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation error: " + strings.Join(msgs, " ")
}

// Is lets callers test with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns the user-facing messages in rule order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return msgs
}
