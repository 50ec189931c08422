// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrAssessmentNotFound      = errors.New("assessment not found")
	ErrHistoryUnavailable      = errors.New("transaction history unavailable")
	ErrProfileUnavailable      = errors.New("account profile unavailable")
	ErrBlacklistUnavailable    = errors.New("blacklist unavailable")
	ErrLoginHistoryUnavailable = errors.New("login history unavailable")
	ErrInvalidTransaction      = errors.New("invalid transaction context")
	ErrInvalidLogin            = errors.New("invalid login context")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
