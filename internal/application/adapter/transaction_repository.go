// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionRepository defines the interface for ledger row persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update saves every field of an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database (hard delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a transaction by its ID.
	// Returns domainerror.ErrTransactionNotFound if the transaction does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDs retrieves the transactions with the given IDs that belong to the user.
	FindByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByInvoice retrieves all rows of an invoice ordered by accrual date.
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Transaction, error)

	// FindSeriesFrom retrieves the unreconciled rows of a recurrence series whose
	// accrual date is on or after from, ordered by accrual date.
	FindSeriesFrom(ctx context.Context, recurrenceID uuid.UUID, from time.Time) ([]*entity.Transaction, error)

	// SetEffectiveDateByInvoice moves every row of an invoice to the given effective date.
	// Returns the number of rows updated.
	SetEffectiveDateByInvoice(ctx context.Context, invoiceID uuid.UUID, effectiveDate time.Time) (int, error)

	// BulkUpdateCategoryByText assigns categoryID to every row of the user whose
	// description contains text (case-insensitive) and whose category differs.
	// Returns the number of rows updated.
	BulkUpdateCategoryByText(ctx context.Context, userID uuid.UUID, text string, categoryID uuid.UUID) (int, error)

	// FindExistingFingerprints returns the subset of fingerprints already stored.
	FindExistingFingerprints(ctx context.Context, fingerprints []string) (map[string]bool, error)
}
