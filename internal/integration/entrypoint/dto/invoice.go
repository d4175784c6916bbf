package dto

import (
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ResolveInvoiceRequest represents the request body for invoice resolution.
type ResolveInvoiceRequest struct {
	AccrualDate string `json:"accrual_date" binding:"required"`
}

// CloseInvoiceRequest represents the request body for closing an invoice.
type CloseInvoiceRequest struct {
	PaymentDate *string `json:"payment_date,omitempty"` // Defaults to today
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID                   string  `json:"id"`
	CardID               string  `json:"card_id"`
	ReferenceMonth       string  `json:"reference_month"`
	ClosingDate          string  `json:"closing_date"`
	DueDate              string  `json:"due_date"`
	Status               string  `json:"status"`
	TotalAmount          string  `json:"total_amount"`
	PaidAmount           *string `json:"paid_amount"`
	PaymentTransactionID *string `json:"payment_transaction_id"`
}

// InvoiceDetailResponse is an invoice with its rows.
type InvoiceDetailResponse struct {
	InvoiceResponse
	CardName     string                `json:"card_name"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListInvoicesResponse lists the invoices of a card.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// CloseInvoiceResponse represents the result of closing an invoice.
// PaymentTransactionID is null when there was nothing to close.
type CloseInvoiceResponse struct {
	Invoice              InvoiceResponse `json:"invoice"`
	PaymentTransactionID *string         `json:"payment_transaction_id"`
}

// ReopenInvoiceResponse represents the result of reopening an invoice.
type ReopenInvoiceResponse struct {
	Reopened bool            `json:"reopened"`
	Invoice  InvoiceResponse `json:"invoice"`
}

// ToInvoiceResponse converts a domain Invoice entity to an InvoiceResponse DTO.
func ToInvoiceResponse(invoice *entity.Invoice) InvoiceResponse {
	response := InvoiceResponse{
		ID:                   invoice.ID.String(),
		CardID:               invoice.CardID.String(),
		ReferenceMonth:       invoice.ReferenceMonth.Format("2006-01"),
		ClosingDate:          formatDate(invoice.ClosingDate),
		DueDate:              formatDate(invoice.DueDate),
		Status:               string(invoice.Status),
		TotalAmount:          invoice.TotalAmount.StringFixed(2),
		PaymentTransactionID: formatOptionalID(invoice.PaymentTransactionID),
	}
	if invoice.PaidAmount != nil {
		paid := invoice.PaidAmount.StringFixed(2)
		response.PaidAmount = &paid
	}
	return response
}

// ToInvoiceResponses converts a list of invoices.
func ToInvoiceResponses(invoices []*entity.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, ToInvoiceResponse(invoice))
	}
	return responses
}
