package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("villa not found")
	ErrConflict   = errors.New("villa already exists")
	ErrValidation = errors.New("validation failed")
)

// FieldError is one field-level message, rendered as "Field: message".
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// ValidationError carries every problem found in a request. It matches ErrValidation,
// and ErrConflict when Conflict is set.
type ValidationError struct {
	Fields   []FieldError
	Conflict bool
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.String())
	}
	return out
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || (e.Conflict && target == ErrConflict)
}

// StoreError wraps a failure of the underlying store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
