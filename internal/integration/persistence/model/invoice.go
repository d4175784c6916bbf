// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database.
// The (card_id, reference_month) unique index backs the atomic get-or-create.
type InvoiceModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CardID               uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_card_month"`
	ReferenceMonth       time.Time        `gorm:"type:date;not null;uniqueIndex:idx_invoices_card_month"`
	ClosingDate          time.Time        `gorm:"type:date;not null"`
	DueDate              time.Time        `gorm:"type:date;not null"`
	Status               string           `gorm:"type:varchar(10);not null;default:open;index"`
	TotalAmount          decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	PaidAmount           *decimal.Decimal `gorm:"type:decimal(15,2)"`
	PaymentTransactionID *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt            time.Time        `gorm:"not null"`
	UpdatedAt            time.Time        `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Card *CardModel `gorm:"foreignKey:CardID;references:ID"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:                   m.ID,
		CardID:               m.CardID,
		ReferenceMonth:       m.ReferenceMonth.UTC(),
		ClosingDate:          m.ClosingDate.UTC(),
		DueDate:              m.DueDate.UTC(),
		Status:               entity.InvoiceStatus(m.Status),
		TotalAmount:          m.TotalAmount,
		PaidAmount:           m.PaidAmount,
		PaymentTransactionID: m.PaymentTransactionID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:                   invoice.ID,
		CardID:               invoice.CardID,
		ReferenceMonth:       invoice.ReferenceMonth,
		ClosingDate:          invoice.ClosingDate,
		DueDate:              invoice.DueDate,
		Status:               string(invoice.Status),
		TotalAmount:          invoice.TotalAmount,
		PaidAmount:           invoice.PaidAmount,
		PaymentTransactionID: invoice.PaymentTransactionID,
		CreatedAt:            invoice.CreatedAt,
		UpdatedAt:            invoice.UpdatedAt,
	}
}
