// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a bank account in the ledger.
// ComputedBalance is a cached projection of the ledger rows and is only ever
// written by the balance recalculation.
type Account struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Name               string
	InitialBalance     decimal.Decimal
	InitialBalanceDate time.Time
	ComputedBalance    decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAccount creates a new Account entity whose balance starts at the initial balance.
func NewAccount(userID uuid.UUID, name string, initialBalance decimal.Decimal, initialBalanceDate time.Time) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               name,
		InitialBalance:     initialBalance,
		InitialBalanceDate: initialBalanceDate,
		ComputedBalance:    initialBalance,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
