// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// FindByID retrieves an invoice by its ID.
	// Returns domainerror.ErrInvoiceNotFound if the invoice does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindByCard retrieves all invoices of a card, most recent first.
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Invoice, error)

	// FindByPaymentTransactionID retrieves the invoice whose close action generated the given payment.
	// Returns domainerror.ErrInvoiceNotFound if no invoice links to it.
	FindByPaymentTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.Invoice, error)

	// GetOrCreate returns the invoice of invoice.CardID for invoice.ReferenceMonth,
	// inserting the given one if none exists. Safe under concurrent callers.
	GetOrCreate(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error)

	// RecalculateTotal overwrites the invoice total with the sum of its debit rows.
	// A missing invoice is not an error.
	RecalculateTotal(ctx context.Context, id uuid.UUID) error

	// MarkClosed closes an open invoice and links its payment.
	// Returns false if the invoice was not open.
	MarkClosed(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal, paymentTransactionID uuid.UUID) (bool, error)

	// MarkOpen reopens a closed invoice, clearing the paid amount and payment link.
	// Returns false if the invoice was not closed.
	MarkOpen(ctx context.Context, id uuid.UUID) (bool, error)
}
