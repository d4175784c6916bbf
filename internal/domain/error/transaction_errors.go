// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found or not owned by the user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTarget is returned when a transaction is not booked against exactly one account or card.
	ErrInvalidTarget = errors.New("transaction must reference exactly one account or card")

	// ErrInvalidTransactionAmount is returned when the transaction amount is negative.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrMissingAccrualDate is returned when a transaction has no accrual date.
	ErrMissingAccrualDate = errors.New("accrual date is required")

	// ErrReconcileFutureDate is returned when reconciling a transaction whose effective date is unknown or in the future.
	ErrReconcileFutureDate = errors.New("only transactions effective up to today can be reconciled")

	// ErrInvoiceClosed is returned when a write would change the rows of a closed invoice.
	ErrInvoiceClosed = errors.New("invoice is closed")

	// ErrPaymentLinkedToInvoice is returned when deleting or rebooking the payment of a closed invoice.
	ErrPaymentLinkedToInvoice = errors.New("transaction is the payment of a closed invoice")

	// ErrInvalidRecurrence is returned when the recurrence period or count is invalid.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrEmptyTransactionIDs is returned when an empty list of transaction IDs is provided.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTarget            TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010004"
	ErrCodeMissingAccrualDate       TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeReconcileFutureDate      TransactionErrorCode = "TXN-010007"
	ErrCodeInvoiceClosed            TransactionErrorCode = "TXN-010008"
	ErrCodePaymentLinkedToInvoice   TransactionErrorCode = "TXN-010009"
	ErrCodeInvalidRecurrence        TransactionErrorCode = "TXN-010010"
	ErrCodeEmptyTransactionIDs      TransactionErrorCode = "TXN-010011"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010012"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010013"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
