// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusOpen   InvoiceStatus = "open"
	InvoiceStatusClosed InvoiceStatus = "closed"
)

// Invoice represents one monthly billing cycle of a card.
type Invoice struct {
	ID                   uuid.UUID
	CardID               uuid.UUID
	ReferenceMonth       time.Time
	ClosingDate          time.Time
	DueDate              time.Time
	Status               InvoiceStatus
	TotalAmount          decimal.Decimal  // Sum of the invoice's debit rows
	PaidAmount           *decimal.Decimal // Set only while closed
	PaymentTransactionID *uuid.UUID       // Payment generated by the close action
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewInvoice creates an open, empty invoice for the given billing cycle.
func NewInvoice(cardID uuid.UUID, cycle valueobject.BillingCycle) *Invoice {
	now := time.Now().UTC()

	return &Invoice{
		ID:             uuid.New(),
		CardID:         cardID,
		ReferenceMonth: cycle.ReferenceMonth,
		ClosingDate:    cycle.ClosingDate,
		DueDate:        cycle.DueDate,
		Status:         InvoiceStatusOpen,
		TotalAmount:    decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsClosed reports whether the invoice has been closed.
func (i *Invoice) IsClosed() bool {
	return i.Status == InvoiceStatusClosed
}

// CanClose reports whether the close action would generate a payment.
func (i *Invoice) CanClose() bool {
	return i.Status == InvoiceStatusOpen && i.TotalAmount.IsPositive()
}
