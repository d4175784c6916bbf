// Package invoice contains credit card invoice use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ReopenInvoiceInput represents the input for reopening an invoice.
type ReopenInvoiceInput struct {
	InvoiceID uuid.UUID
	UserID    uuid.UUID
}

// ReopenInvoiceOutput represents the output of reopening an invoice.
type ReopenInvoiceOutput struct {
	Outcome ledger.ReopenOutcome
	Invoice *entity.Invoice
}

// Reopened reports whether the invoice was reopened.
func (o *ReopenInvoiceOutput) Reopened() bool {
	return o.Outcome == ledger.ReopenOutcomeReopened
}

// ReopenInvoiceUseCase handles reopening a closed invoice.
type ReopenInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	cardRepo    adapter.CardRepository
	lifecycle   *ledger.InvoiceLifecycle
}

// NewReopenInvoiceUseCase creates a new ReopenInvoiceUseCase instance.
func NewReopenInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	cardRepo adapter.CardRepository,
	lifecycle *ledger.InvoiceLifecycle,
) *ReopenInvoiceUseCase {
	return &ReopenInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		cardRepo:    cardRepo,
		lifecycle:   lifecycle,
	}
}

// Execute reopens the invoice. Refusals are reported through the outcome.
func (uc *ReopenInvoiceUseCase) Execute(ctx context.Context, input ReopenInvoiceInput) (*ReopenInvoiceOutput, error) {
	if _, _, err := findOwnedInvoice(ctx, uc.invoiceRepo, uc.cardRepo, input.InvoiceID, input.UserID); err != nil {
		return nil, err
	}

	outcome, err := uc.lifecycle.Reopen(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	invoice, err := uc.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return &ReopenInvoiceOutput{
		Outcome: outcome,
		Invoice: invoice,
	}, nil
}
