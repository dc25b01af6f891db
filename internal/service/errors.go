// Package service holds the business rules of the event backend: the
// booking/payment workflow, capacity-bounded event registration, user
// identity and category management.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error a service returns on a rule violation matches one
// of these with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Specific rule violations.
var (
	ErrCapacityExceeded  = kindError(ErrInvalidState, "Event has reached its capacity")
	ErrAlreadyRegistered = kindError(ErrInvalidState, "User is already registered for this event")
	ErrAlreadyPaid       = kindError(ErrInvalidState, "Booking already has a payment")
	ErrCategoryInUse     = kindError(ErrInvalidState, "Cannot delete category used by events")
	ErrEmailInUse        = kindError(ErrAlreadyExists, "Email already in use")
)

// Error is a rule violation with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func kindError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func notFound(entity string, id uint) error {
	return kindError(ErrNotFound, fmt.Sprintf("%s not found with ID: %d", entity, id))
}

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + v.FieldErrors[field]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Add records a field level validation error.
func (v *ValidationError) Add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// errOrNil avoids returning a typed nil through the error interface.
func (v *ValidationError) errOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
