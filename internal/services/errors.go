package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError marks semantically invalid input (bad interval, bad date
// window, missing field). Handlers translate it to a 422.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Err: errors.New(message)}
}

// isDuplicate recognizes unique-constraint violations from either dialect.
// The constraint is the authoritative uniqueness check; service-level
// pre-checks are only an early exit.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "Duplicate entry")
}
