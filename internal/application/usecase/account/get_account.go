// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// GetAccountInput represents the input for fetching an account.
type GetAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// GetAccountOutput represents the balance view of an account.
type GetAccountOutput struct {
	Account *entity.Account
}

// GetAccountUseCase handles fetching an account owned by the user.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
	balances    *ledger.BalanceRecalculator
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository, balances *ledger.BalanceRecalculator) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
		balances:    balances,
	}
}

// Execute fetches the account. The balance is recomputed first: under the
// to_date policy rows scheduled for a later day start counting once that day
// arrives, without any write touching the account.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
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

// FindOwned loads an account and checks it belongs to userID. Accounts of
// other users are reported as not found.
func FindOwned(ctx context.Context, accountRepo adapter.AccountRepository, accountID, userID uuid.UUID) (*entity.Account, error) {
	account, err := accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != userID {
		return nil, notFound()
	}
	return account, nil
}

func notFound() error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}
