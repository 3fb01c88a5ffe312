package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)
	ErrOnboardingRequired   = errors.New("onboarding required")
	ErrForbidden            = errors.New("forbidden")
	ErrCategoryExists       = errors.New("category already exists")
	ErrMissingSeedRole      = errors.New("seed role missing")
)

// ValidationError reports a rejected request field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
