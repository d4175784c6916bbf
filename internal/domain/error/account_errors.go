// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found or not owned by the user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidInitialBalance is returned when the initial balance or its date is invalid.
	ErrInvalidInitialBalance = errors.New("invalid initial balance")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAccountNotFound       AccountErrorCode = "ACC-010001"
	ErrCodeInvalidInitialBalance AccountErrorCode = "ACC-010002"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
