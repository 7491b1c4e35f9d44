// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Rule errors.
	ErrEmptyPattern    = errors.New("vendor name pattern must not be empty")
	ErrInvalidCategory = errors.New("invalid tax category")

	// Classification errors.
	ErrNotAnInvoice         = errors.New("document does not appear to be a valid invoice")
	ErrClassificationFailed = errors.New("classification failed")

	// Export errors.
	ErrNothingToExport = errors.New("no completed invoices to export")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
