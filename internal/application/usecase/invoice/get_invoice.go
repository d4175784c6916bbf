// Package invoice contains credit card invoice use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GetInvoiceInput represents the input for the invoice detail view.
type GetInvoiceInput struct {
	InvoiceID uuid.UUID
	UserID    uuid.UUID
}

// GetInvoiceOutput represents an invoice with its rows.
type GetInvoiceOutput struct {
	Invoice      *entity.Invoice
	Card         *entity.Card
	Transactions []*entity.Transaction
}

// GetInvoiceUseCase handles the invoice detail view.
type GetInvoiceUseCase struct {
	invoiceRepo     adapter.InvoiceRepository
	cardRepo        adapter.CardRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	cardRepo adapter.CardRepository,
	transactionRepo adapter.TransactionRepository,
) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute loads the invoice and its transactions.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*GetInvoiceOutput, error) {
	invoice, card, err := findOwnedInvoice(ctx, uc.invoiceRepo, uc.cardRepo, input.InvoiceID, input.UserID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice transactions: %w", err)
	}

	return &GetInvoiceOutput{
		Invoice:      invoice,
		Card:         card,
		Transactions: transactions,
	}, nil
}
