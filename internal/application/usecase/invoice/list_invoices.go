// Package invoice contains credit card invoice use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListInvoicesInput represents the input for listing a card's invoices.
type ListInvoicesInput struct {
	CardID uuid.UUID
	UserID uuid.UUID
}

// ListInvoicesOutput represents the output of listing invoices.
type ListInvoicesOutput struct {
	Invoices []*entity.Invoice
}

// ListInvoicesUseCase handles listing a card's invoices, most recent first.
type ListInvoicesUseCase struct {
	cardRepo    adapter.CardRepository
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(cardRepo adapter.CardRepository, invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		cardRepo:    cardRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Execute performs the listing.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	if _, err := findOwnedCard(ctx, uc.cardRepo, input.CardID, input.UserID); err != nil {
		return nil, err
	}

	invoices, err := uc.invoiceRepo.FindByCard(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return &ListInvoicesOutput{Invoices: invoices}, nil
}
