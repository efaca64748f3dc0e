// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrNoPages = errors.New("transcript has no pages")
	ErrPDFRead = errors.New("failed to read PDF")
	ErrNoFiles = errors.New("no transcript files found")

	// Certification errors.
	ErrNoGraduateRecord = errors.New(`no "Beginning of Graduate Record" marker found`)
	ErrInvariant        = errors.New("certification invariant violated")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidPolicy = errors.New("invalid policy")
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
