package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// DeleteTransactionInput represents the input for deleting a transaction.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	// CascadeSeries also deletes the later unreconciled occurrences of the same recurrence.
	CascadeSeries bool
}

// DeleteTransactionOutput represents the output of deleting a transaction.
type DeleteTransactionOutput struct {
	DeletedCount int
}

// DeleteTransactionUseCase handles transaction deletion.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
	orchestrator    *ledger.Orchestrator
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
	orchestrator *ledger.Orchestrator,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		orchestrator:    orchestrator,
	}
}

// Execute deletes the transaction.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	txn, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotClosedPayment(ctx, uc.invoiceRepo, txn); err != nil {
		return nil, err
	}

	output := &DeleteTransactionOutput{}
	err = uc.orchestrator.Batch(ctx, func(ctx context.Context) error {
		if err := uc.orchestrator.Delete(ctx, txn.ID); err != nil {
			return err
		}
		output.DeletedCount++

		if !input.CascadeSeries || txn.RecurrenceID == nil {
			return nil
		}
		series, err := uc.transactionRepo.FindSeriesFrom(ctx, *txn.RecurrenceID, txn.AccrualDate)
		if err != nil {
			return fmt.Errorf("failed to load series: %w", err)
		}
		for _, occurrence := range series {
			if err := uc.orchestrator.Delete(ctx, occurrence.ID); err != nil {
				return err
			}
			output.DeletedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}
