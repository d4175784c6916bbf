// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Exactly one of AccountID and CardID is set.
type TransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description       string          `gorm:"type:varchar(255);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type              string          `gorm:"type:varchar(10);not null"`
	AccrualDate       time.Time       `gorm:"type:date;not null;index"`
	EffectiveDate     *time.Time      `gorm:"type:date;index"`
	Reconciled        bool            `gorm:"not null;default:false"`
	CategoryID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID         *uuid.UUID      `gorm:"type:uuid;index"`
	CardID            *uuid.UUID      `gorm:"type:uuid;index"`
	InvoiceID         *uuid.UUID      `gorm:"type:uuid;index"`
	RecurrenceID      *uuid.UUID      `gorm:"type:uuid;index"`
	ImportFingerprint *string         `gorm:"type:varchar(32);uniqueIndex"`
	DocumentNumber    string          `gorm:"type:varchar(50)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Account  *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	Card     *CardModel     `gorm:"foreignKey:CardID;references:ID"`
	Invoice  *InvoiceModel  `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var target entity.Target
	switch {
	case m.AccountID != nil:
		target = entity.AccountTarget(*m.AccountID)
	case m.CardID != nil:
		target = entity.CardTarget(*m.CardID)
	}

	var effectiveDate *time.Time
	if m.EffectiveDate != nil {
		d := m.EffectiveDate.UTC()
		effectiveDate = &d
	}

	return &entity.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Description:       m.Description,
		Amount:            m.Amount,
		Type:              entity.TransactionType(m.Type),
		AccrualDate:       m.AccrualDate.UTC(),
		EffectiveDate:     effectiveDate,
		Reconciled:        m.Reconciled,
		CategoryID:        m.CategoryID,
		Target:            target,
		InvoiceID:         m.InvoiceID,
		RecurrenceID:      m.RecurrenceID,
		ImportFingerprint: m.ImportFingerprint,
		DocumentNumber:    m.DocumentNumber,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	m := &TransactionModel{
		ID:                transaction.ID,
		UserID:            transaction.UserID,
		Description:       transaction.Description,
		Amount:            transaction.Amount,
		Type:              string(transaction.Type),
		AccrualDate:       transaction.AccrualDate,
		EffectiveDate:     transaction.EffectiveDate,
		Reconciled:        transaction.Reconciled,
		CategoryID:        transaction.CategoryID,
		InvoiceID:         transaction.InvoiceID,
		RecurrenceID:      transaction.RecurrenceID,
		ImportFingerprint: transaction.ImportFingerprint,
		DocumentNumber:    transaction.DocumentNumber,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}

	if accountID, ok := transaction.AccountID(); ok {
		m.AccountID = &accountID
	}
	if cardID, ok := transaction.CardID(); ok {
		m.CardID = &cardID
	}

	return m
}
