package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UpdateInitialBalanceRequest represents the request body for changing an account's opening balance.
type UpdateInitialBalanceRequest struct {
	InitialBalance     decimal.Decimal `json:"initial_balance"`
	InitialBalanceDate string          `json:"initial_balance_date" binding:"required"`
}

// AccountResponse is the balance view of an account.
type AccountResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	InitialBalance     string    `json:"initial_balance"`
	InitialBalanceDate string    `json:"initial_balance_date"`
	ComputedBalance    string    `json:"computed_balance"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:                 account.ID.String(),
		Name:               account.Name,
		InitialBalance:     account.InitialBalance.StringFixed(2),
		InitialBalanceDate: formatDate(account.InitialBalanceDate),
		ComputedBalance:    account.ComputedBalance.StringFixed(2),
		UpdatedAt:          account.UpdatedAt,
	}
}
