package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds shared by all services. Handlers branch on these with
// errors.Is / errors.As; everything else maps to an internal failure.
var (
	ErrDuplicateIdentity    = errors.New("username or email already registered")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrNotFound             = errors.New("not found")
)

// ValidationError reports malformed or missing input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
