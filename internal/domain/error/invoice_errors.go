// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// Invoice and card domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found or its card is not owned by the user.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrCardNotFound is returned when a card is not found or not owned by the user.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidBillingDay is returned when a card's closing or due day is outside 1-31.
	ErrInvalidBillingDay = errors.New("invalid billing day")

	// ErrCardWithoutPaymentAccount is returned when closing an invoice of a card with no payment account.
	ErrCardWithoutPaymentAccount = errors.New("card has no payment account")

	// ErrInvoiceNotClosed is returned when reopening an invoice that is not closed.
	ErrInvoiceNotClosed = errors.New("invoice is not closed")

	// ErrInvoicePaymentReconciled is returned when reopening an invoice whose payment was reconciled.
	ErrInvoicePaymentReconciled = errors.New("invoice payment is already reconciled")

	// ErrInvoiceStateChanged is returned when an invoice changed status during a lifecycle action.
	ErrInvoiceStateChanged = errors.New("invoice status changed concurrently")

	// ErrInvoiceBusy is returned when another lifecycle action holds the invoice lock.
	ErrInvoiceBusy = errors.New("invoice is being modified")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvoiceNotFound           InvoiceErrorCode = "INV-010001"
	ErrCodeCardNotFound              InvoiceErrorCode = "INV-010002"
	ErrCodeInvalidBillingDay         InvoiceErrorCode = "INV-010003"
	ErrCodeCardWithoutPaymentAccount InvoiceErrorCode = "INV-010004"
	ErrCodeInvalidPaymentDate        InvoiceErrorCode = "INV-010005"

	// State conflicts (02XXXX)
	ErrCodeInvoiceNotClosed         InvoiceErrorCode = "INV-020001"
	ErrCodeInvoicePaymentReconciled InvoiceErrorCode = "INV-020002"
	ErrCodeInvoiceStateChanged      InvoiceErrorCode = "INV-020003"

	// Concurrency (03XXXX)
	ErrCodeInvoiceBusy InvoiceErrorCode = "INV-030001"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
