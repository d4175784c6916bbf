// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	// Returns domainerror.ErrAccountNotFound if the account does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// UpdateInitialBalance changes the initial balance and the date it applies from.
	UpdateInitialBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal, date time.Time) error

	// RecalculateBalance overwrites the computed balance with the initial balance plus
	// credits minus debits effective on or after the initial balance date, in a single
	// statement. When asOf is set, rows effective after it are ignored.
	// A missing account is not an error.
	RecalculateBalance(ctx context.Context, id uuid.UUID, asOf *time.Time) error
}
