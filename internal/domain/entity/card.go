// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Card represents a credit card. Its purchases are grouped into monthly
// invoices according to ClosingDay and DueDay.
type Card struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	CreditLimit      decimal.Decimal
	ClosingDay       int
	DueDay           int
	PaymentAccountID *uuid.UUID // Account debited when an invoice is closed
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCard creates a new Card entity.
func NewCard(userID uuid.UUID, name string, creditLimit decimal.Decimal, closingDay, dueDay int, paymentAccountID *uuid.UUID) *Card {
	now := time.Now().UTC()

	return &Card{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		CreditLimit:      creditLimit,
		ClosingDay:       closingDay,
		DueDay:           dueDay,
		PaymentAccountID: paymentAccountID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
