package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// RecurrenceRequest asks for a transaction to be repeated.
type RecurrenceRequest struct {
	Period string `json:"period" binding:"omitempty,oneof=daily weekly monthly semiannual annual"`
	Count  int    `json:"count" binding:"required,min=1,max=120"`
}

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	AccountID      *string            `json:"account_id,omitempty"`
	CardID         *string            `json:"card_id,omitempty"`
	Description    string             `json:"description" binding:"max=255"`
	Amount         decimal.Decimal    `json:"amount"`
	Type           string             `json:"type" binding:"required,oneof=credit debit"`
	AccrualDate    string             `json:"accrual_date" binding:"required"`
	EffectiveDate  *string            `json:"effective_date,omitempty"`
	Reconciled     bool               `json:"reconciled,omitempty"`
	CategoryID     *string            `json:"category_id,omitempty"`
	DocumentNumber string             `json:"document_number,omitempty" binding:"max=64"`
	Recurrence     *RecurrenceRequest `json:"recurrence,omitempty"`
}

// UpdateTransactionRequest represents the request body for a partial transaction edit.
type UpdateTransactionRequest struct {
	Description   *string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Type          *string          `json:"type,omitempty" binding:"omitempty,oneof=credit debit"`
	AccrualDate   *string          `json:"accrual_date,omitempty"`
	EffectiveDate *string          `json:"effective_date,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	AccountID     *string          `json:"account_id,omitempty"`
	CardID        *string          `json:"card_id,omitempty"`
	ApplyToSeries bool             `json:"apply_to_series,omitempty"`
}

// ReconcileTransactionRequest represents the request body for reconciling a transaction.
type ReconcileTransactionRequest struct {
	EffectiveDate string           `json:"effective_date" binding:"required"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

// ExpandRecurrenceRequest represents the request body for expanding a recurrence.
type ExpandRecurrenceRequest = RecurrenceRequest

// BulkDeleteTransactionsRequest represents the request body for bulk transaction deletion.
type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	Amount         string    `json:"amount"`
	Type           string    `json:"type"`
	AccrualDate    string    `json:"accrual_date"`
	EffectiveDate  *string   `json:"effective_date"`
	Reconciled     bool      `json:"reconciled"`
	CategoryID     string    `json:"category_id"`
	AccountID      *string   `json:"account_id,omitempty"`
	CardID         *string   `json:"card_id,omitempty"`
	InvoiceID      *string   `json:"invoice_id,omitempty"`
	RecurrenceID   *string   `json:"recurrence_id,omitempty"`
	DocumentNumber string    `json:"document_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateTransactionResponse represents the response of a transaction creation.
type CreateTransactionResponse struct {
	TransactionResponse
	Occurrences []TransactionResponse `json:"occurrences,omitempty"`
}

// UpdateTransactionResponse represents the response of a transaction edit.
type UpdateTransactionResponse struct {
	TransactionResponse
	SeriesUpdated int `json:"series_updated"`
}

// DeleteTransactionsResponse represents the response of a single or bulk deletion.
type DeleteTransactionsResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// ExpandRecurrenceResponse lists the generated occurrences.
type ExpandRecurrenceResponse struct {
	Occurrences []TransactionResponse `json:"occurrences"`
}

// SuggestCategoryResponse represents a category suggestion.
type SuggestCategoryResponse struct {
	CategoryID string `json:"category_id"`
	Matched    bool   `json:"matched"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:             txn.ID.String(),
		Description:    txn.Description,
		Amount:         txn.Amount.StringFixed(2),
		Type:           string(txn.Type),
		AccrualDate:    formatDate(txn.AccrualDate),
		EffectiveDate:  formatOptionalDate(txn.EffectiveDate),
		Reconciled:     txn.Reconciled,
		CategoryID:     txn.CategoryID.String(),
		InvoiceID:      formatOptionalID(txn.InvoiceID),
		RecurrenceID:   formatOptionalID(txn.RecurrenceID),
		DocumentNumber: txn.DocumentNumber,
		CreatedAt:      txn.CreatedAt,
		UpdatedAt:      txn.UpdatedAt,
	}
	if accountID, ok := txn.AccountID(); ok {
		response.AccountID = formatOptionalID(&accountID)
	}
	if cardID, ok := txn.CardID(); ok {
		response.CardID = formatOptionalID(&cardID)
	}
	return response
}

// ToTransactionResponses converts a list of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		responses = append(responses, ToTransactionResponse(txn))
	}
	return responses
}
