// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// RecomputeBalanceInput represents the input for recomputing an account balance.
type RecomputeBalanceInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// RecomputeBalanceUseCase rebuilds an account's computed balance from its rows.
type RecomputeBalanceUseCase struct {
	accountRepo adapter.AccountRepository
	balances    *ledger.BalanceRecalculator
}

// NewRecomputeBalanceUseCase creates a new RecomputeBalanceUseCase instance.
func NewRecomputeBalanceUseCase(accountRepo adapter.AccountRepository, balances *ledger.BalanceRecalculator) *RecomputeBalanceUseCase {
	return &RecomputeBalanceUseCase{
		accountRepo: accountRepo,
		balances:    balances,
	}
}

// Execute recomputes the balance and returns the refreshed account.
func (uc *RecomputeBalanceUseCase) Execute(ctx context.Context, input RecomputeBalanceInput) (*GetAccountOutput, error) {
	if _, err := FindOwned(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.balances.Recompute(ctx, input.AccountID); err != nil {
		return nil, fmt.Errorf("failed to recompute balance: %w", err)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload account: %w", err)
	}
	return &GetAccountOutput{Account: account}, nil
}
