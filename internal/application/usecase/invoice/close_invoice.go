// Package invoice contains credit card invoice use cases.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CloseInvoiceInput represents the input for closing an invoice.
type CloseInvoiceInput struct {
	InvoiceID   uuid.UUID
	UserID      uuid.UUID
	PaymentDate *time.Time // Defaults to today
}

// CloseInvoiceOutput represents the output of closing an invoice.
type CloseInvoiceOutput struct {
	Invoice *entity.Invoice
	Payment *entity.Transaction // nil when there was nothing to close
}

// CloseInvoiceUseCase handles closing an invoice.
type CloseInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	cardRepo    adapter.CardRepository
	lifecycle   *ledger.InvoiceLifecycle
	clock       adapter.Clock
}

// NewCloseInvoiceUseCase creates a new CloseInvoiceUseCase instance.
func NewCloseInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	cardRepo adapter.CardRepository,
	lifecycle *ledger.InvoiceLifecycle,
	clock adapter.Clock,
) *CloseInvoiceUseCase {
	return &CloseInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		cardRepo:    cardRepo,
		lifecycle:   lifecycle,
		clock:       clock,
	}
}

// Execute closes the invoice.
func (uc *CloseInvoiceUseCase) Execute(ctx context.Context, input CloseInvoiceInput) (*CloseInvoiceOutput, error) {
	if _, _, err := findOwnedInvoice(ctx, uc.invoiceRepo, uc.cardRepo, input.InvoiceID, input.UserID); err != nil {
		return nil, err
	}

	paymentDate := uc.clock.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment, err := uc.lifecycle.Close(ctx, input.InvoiceID, paymentDate)
	if err != nil {
		return nil, err
	}

	invoice, err := uc.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return &CloseInvoiceOutput{
		Invoice: invoice,
		Payment: payment,
	}, nil
}
