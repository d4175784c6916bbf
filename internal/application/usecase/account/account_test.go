package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/persistencetest"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

type movingClock struct {
	now time.Time
}

func (c *movingClock) Now() time.Time {
	return c.now
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountUseCases(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewDB(t)
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	balances := ledger.NewBalanceRecalculator(accountRepo, fixedClock{}, ledger.BalancePolicyToDate)

	recompute := account.NewRecomputeBalanceUseCase(accountRepo, balances)
	updateInitial := account.NewUpdateInitialBalanceUseCase(persistence.NewTransactionManager(db), accountRepo, balances)
	get := account.NewGetAccountUseCase(accountRepo, balances)

	userID := uuid.New()
	acc := entity.NewAccount(userID, "Checking", decimal.NewFromInt(1000), date(2024, 1, 1))
	if err := accountRepo.Create(ctx, acc); err != nil {
		t.Fatalf("create account: %v", err)
	}
	effective := date(2024, 2, 1)
	debit := entity.NewTransaction(userID, entity.AccountTarget(acc.ID), "rent", decimal.NewFromInt(300), entity.TransactionTypeDebit, effective, &effective, entity.DefaultSystemCategories().Other)
	if err := transactionRepo.Create(ctx, debit); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	t.Run("recompute", func(t *testing.T) {
		out, err := recompute.Execute(ctx, account.RecomputeBalanceInput{AccountID: acc.ID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !out.Account.ComputedBalance.Equal(decimal.NewFromInt(700)) {
			t.Errorf("ComputedBalance = %s, want 700", out.Account.ComputedBalance)
		}
	})

	tests := []struct {
		name    string
		initial int64
		date    time.Time
		want    int64
	}{
		{name: "new opening amount", initial: 2000, date: date(2024, 1, 1), want: 1700},
		{name: "opening date after the debit", initial: 2000, date: date(2024, 3, 1), want: 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := updateInitial.Execute(ctx, account.UpdateInitialBalanceInput{
				AccountID:          acc.ID,
				UserID:             userID,
				InitialBalance:     decimal.NewFromInt(tt.initial),
				InitialBalanceDate: tt.date,
			})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !out.Account.ComputedBalance.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("ComputedBalance = %s, want %d", out.Account.ComputedBalance, tt.want)
			}
		})
	}

	t.Run("missing date", func(t *testing.T) {
		_, err := updateInitial.Execute(ctx, account.UpdateInitialBalanceInput{AccountID: acc.ID, UserID: userID})
		if !errors.Is(err, domainerror.ErrInvalidInitialBalance) {
			t.Errorf("Execute() error = %v, want ErrInvalidInitialBalance", err)
		}
	})

	t.Run("other user's account", func(t *testing.T) {
		_, err := get.Execute(ctx, account.GetAccountInput{AccountID: acc.ID, UserID: uuid.New()})
		var accountErr *domainerror.AccountError
		if !errors.As(err, &accountErr) || accountErr.Code != domainerror.ErrCodeAccountNotFound {
			t.Errorf("Execute() error = %v, want %s", err, domainerror.ErrCodeAccountNotFound)
		}
	})
}

func TestGetAccount_ScheduledRowsCountOnceDue(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewDB(t)
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	clock := &movingClock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	balances := ledger.NewBalanceRecalculator(accountRepo, clock, ledger.BalancePolicyToDate)
	get := account.NewGetAccountUseCase(accountRepo, balances)

	userID := uuid.New()
	acc := entity.NewAccount(userID, "Checking", decimal.NewFromInt(1000), date(2024, 1, 1))
	acc.ComputedBalance = acc.InitialBalance
	if err := accountRepo.Create(ctx, acc); err != nil {
		t.Fatalf("create account: %v", err)
	}
	effective := date(2024, 6, 20)
	debit := entity.NewTransaction(userID, entity.AccountTarget(acc.ID), "insurance", decimal.NewFromInt(100), entity.TransactionTypeDebit, effective, &effective, entity.DefaultSystemCategories().Other)
	if err := transactionRepo.Create(ctx, debit); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want int64
	}{
		{name: "before the effective date", now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), want: 1000},
		{name: "on the effective date", now: time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC), want: 900},
		{name: "days later", now: time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC), want: 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.now
			out, err := get.Execute(ctx, account.GetAccountInput{AccountID: acc.ID, UserID: userID})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !out.Account.ComputedBalance.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("ComputedBalance = %s, want %d", out.Account.ComputedBalance, tt.want)
			}
		})
	}
}
