// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CardModel represents the cards table in the database.
type CardModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(100);not null"`
	CreditLimit      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ClosingDay       int             `gorm:"not null"`
	DueDay           int             `gorm:"not null"`
	PaymentAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	PaymentAccount *AccountModel `gorm:"foreignKey:PaymentAccountID;references:ID"`
}

// TableName returns the table name for the CardModel.
func (CardModel) TableName() string {
	return "cards"
}

// ToEntity converts a CardModel to a domain Card entity.
func (m *CardModel) ToEntity() *entity.Card {
	return &entity.Card{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		CreditLimit:      m.CreditLimit,
		ClosingDay:       m.ClosingDay,
		DueDay:           m.DueDay,
		PaymentAccountID: m.PaymentAccountID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CardFromEntity creates a CardModel from a domain Card entity.
func CardFromEntity(card *entity.Card) *CardModel {
	return &CardModel{
		ID:               card.ID,
		UserID:           card.UserID,
		Name:             card.Name,
		CreditLimit:      card.CreditLimit,
		ClosingDay:       card.ClosingDay,
		DueDay:           card.DueDay,
		PaymentAccountID: card.PaymentAccountID,
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}
}
