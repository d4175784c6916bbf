// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name               string          `gorm:"type:varchar(100);not null"`
	InitialBalance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	InitialBalanceDate time.Time       `gorm:"type:date;not null"`
	ComputedBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		InitialBalance:     m.InitialBalance,
		InitialBalanceDate: m.InitialBalanceDate.UTC(),
		ComputedBalance:    m.ComputedBalance,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:                 account.ID,
		UserID:             account.UserID,
		Name:               account.Name,
		InitialBalance:     account.InitialBalance,
		InitialBalanceDate: account.InitialBalanceDate,
		ComputedBalance:    account.ComputedBalance,
		CreatedAt:          account.CreatedAt,
		UpdatedAt:          account.UpdatedAt,
	}
}
