// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// UpdateInitialBalanceInput represents the input for changing an account's opening balance.
type UpdateInitialBalanceInput struct {
	AccountID          uuid.UUID
	UserID             uuid.UUID
	InitialBalance     decimal.Decimal
	InitialBalanceDate time.Time
}

// UpdateInitialBalanceUseCase changes the opening balance and recomputes the account.
type UpdateInitialBalanceUseCase struct {
	txManager   adapter.TransactionManager
	accountRepo adapter.AccountRepository
	balances    *ledger.BalanceRecalculator
}

// NewUpdateInitialBalanceUseCase creates a new UpdateInitialBalanceUseCase instance.
func NewUpdateInitialBalanceUseCase(
	txManager adapter.TransactionManager,
	accountRepo adapter.AccountRepository,
	balances *ledger.BalanceRecalculator,
) *UpdateInitialBalanceUseCase {
	return &UpdateInitialBalanceUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		balances:    balances,
	}
}

// Execute performs the update.
func (uc *UpdateInitialBalanceUseCase) Execute(ctx context.Context, input UpdateInitialBalanceInput) (*GetAccountOutput, error) {
	if input.InitialBalanceDate.IsZero() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidInitialBalance,
			"initial balance date is required",
			domainerror.ErrInvalidInitialBalance,
		)
	}

	var output *GetAccountOutput
	err := uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := FindOwned(ctx, uc.accountRepo, input.AccountID, input.UserID); err != nil {
			return err
		}

		date := valueobject.DateOf(input.InitialBalanceDate)
		if err := uc.accountRepo.UpdateInitialBalance(ctx, input.AccountID, input.InitialBalance, date); err != nil {
			return fmt.Errorf("failed to update initial balance: %w", err)
		}
		if err := uc.balances.Recompute(ctx, input.AccountID); err != nil {
			return fmt.Errorf("failed to recompute balance: %w", err)
		}

		account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			return fmt.Errorf("failed to reload account: %w", err)
		}
		output = &GetAccountOutput{Account: account}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
