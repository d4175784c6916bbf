// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// signedSumSQL sums credits minus debits of an account's rows that count
// towards its balance. The optional upper bound is appended by the caller.
const signedSumSQL = `SELECT SUM(CASE WHEN t.type = 'credit' THEN t.amount ELSE -t.amount END)
	FROM transactions t
	WHERE t.account_id = accounts.id
	AND t.effective_date IS NOT NULL
	AND t.effective_date >= accounts.initial_balance_date`

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	if err := conn(ctx, r.db).Create(accountModel).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", result.Error)
	}
	return accountModel.ToEntity(), nil
}

// UpdateInitialBalance changes the initial balance and the date it applies from.
func (r *accountRepository) UpdateInitialBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal, date time.Time) error {
	result := conn(ctx, r.db).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"initial_balance":      amount,
			"initial_balance_date": date,
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update initial balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// RecalculateBalance rewrites computed_balance in one UPDATE with a correlated subquery.
func (r *accountRepository) RecalculateBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) error {
	expr := gorm.Expr("initial_balance + COALESCE((" + signedSumSQL + "), 0)")
	if asOf != nil {
		expr = gorm.Expr("initial_balance + COALESCE(("+signedSumSQL+" AND t.effective_date <= ?), 0)", *asOf)
	}

	result := conn(ctx, r.db).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"computed_balance": expr,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to recalculate balance: %w", result.Error)
	}
	return nil
}
