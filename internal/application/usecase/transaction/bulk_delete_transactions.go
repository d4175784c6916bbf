package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// BulkDeleteTransactionsInput represents the input for bulk deleting transactions.
type BulkDeleteTransactionsInput struct {
	IDs    []uuid.UUID
	UserID uuid.UUID
}

// BulkDeleteTransactionsOutput represents the output of bulk deleting transactions.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int
}

// BulkDeleteTransactionsUseCase deletes many transactions with one
// recalculation per touched account and invoice. Either every row is
// deleted or none is.
type BulkDeleteTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
	orchestrator    *ledger.Orchestrator
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
	orchestrator *ledger.Orchestrator,
) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		orchestrator:    orchestrator,
	}
}

// Execute deletes the transactions.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	if len(input.IDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"at least one transaction ID is required",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	ids := uniqueIDs(input.IDs)
	transactions, err := uc.transactionRepo.FindByIDs(ctx, ids, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	if len(transactions) != len(ids) {
		return nil, transactionNotFound()
	}
	for _, txn := range transactions {
		if err := ensureNotClosedPayment(ctx, uc.invoiceRepo, txn); err != nil {
			return nil, err
		}
	}

	err = uc.orchestrator.Batch(ctx, func(ctx context.Context) error {
		for _, txn := range transactions {
			if err := uc.orchestrator.Delete(ctx, txn.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &BulkDeleteTransactionsOutput{DeletedCount: len(transactions)}, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
