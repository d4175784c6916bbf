// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// CategoryRule domain errors.
var (
	// ErrCategoryRuleNotFound is returned when a category rule is not found or not owned by the user.
	ErrCategoryRuleNotFound = errors.New("category rule not found")

	// ErrCategoryRuleMissingText is returned when the rule has no match text.
	ErrCategoryRuleMissingText = errors.New("match text is required")

	// ErrMatchTextTooLong is returned when the match text exceeds the maximum length.
	ErrMatchTextTooLong = errors.New("match text too long")
)

// CategoryRuleErrorCode defines error codes for category rule errors.
// Format: CRL-XXYYYY where XX is category and YYYY is specific error.
type CategoryRuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryRuleNotFound    CategoryRuleErrorCode = "CRL-010001"
	ErrCodeMissingMatchText        CategoryRuleErrorCode = "CRL-010002"
	ErrCodeMatchTextTooLong        CategoryRuleErrorCode = "CRL-010003"
	ErrCodeCategoryNotFoundForRule CategoryRuleErrorCode = "CRL-010004"
)

// CategoryRuleError represents a category rule error with code and message.
type CategoryRuleError struct {
	Code    CategoryRuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryRuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryRuleError) Unwrap() error {
	return e.Err
}

// NewCategoryRuleError creates a new CategoryRuleError with the given code and message.
func NewCategoryRuleError(code CategoryRuleErrorCode, message string, err error) *CategoryRuleError {
	return &CategoryRuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
