// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found or not visible to the user.
	ErrCategoryNotFound = errors.New("category not found")
)
