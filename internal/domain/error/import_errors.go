// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// Statement import domain errors.
var (
	// ErrEmptyImport is returned when an import request carries no rows.
	ErrEmptyImport = errors.New("import has no rows")

	// ErrImportBusy is returned when another import for the same account is running.
	ErrImportBusy = errors.New("an import for this account is already running")

	// ErrImportRateLimited is returned when a user submits imports faster than allowed.
	ErrImportRateLimited = errors.New("too many imports")
)

// ImportErrorCode defines error codes for statement import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyImport ImportErrorCode = "IMP-010001"

	// Concurrency (03XXXX)
	ErrCodeImportBusy        ImportErrorCode = "IMP-030001"
	ErrCodeImportRateLimited ImportErrorCode = "IMP-030002"
)

// ImportError represents a statement import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
