package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ReconcileTransactionInput confirms a transaction against the bank statement.
type ReconcileTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	EffectiveDate time.Time
	Amount        *decimal.Decimal // Corrected amount, if the bank booked a different one
}

// ReconcileTransactionOutput represents the output of reconciling a transaction.
type ReconcileTransactionOutput struct {
	Transaction *entity.Transaction
}

// ReconcileTransactionUseCase marks a transaction as reconciled.
type ReconcileTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
	orchestrator    *ledger.Orchestrator
}

// NewReconcileTransactionUseCase creates a new ReconcileTransactionUseCase instance.
func NewReconcileTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	invoiceRepo adapter.InvoiceRepository,
	orchestrator *ledger.Orchestrator,
) *ReconcileTransactionUseCase {
	return &ReconcileTransactionUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		orchestrator:    orchestrator,
	}
}

// Execute reconciles the transaction. The effective date must not be in the future.
// The payment of a closed invoice can be reconciled, but only for the amount paid.
func (uc *ReconcileTransactionUseCase) Execute(ctx context.Context, input ReconcileTransactionInput) (*ReconcileTransactionOutput, error) {
	txn, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.Amount != nil && !input.Amount.Equal(txn.Amount) {
		if err := ensureNotClosedPayment(ctx, uc.invoiceRepo, txn); err != nil {
			return nil, err
		}
	}

	effective := input.EffectiveDate
	txn.EffectiveDate = &effective
	if input.Amount != nil {
		txn.Amount = *input.Amount
	}
	txn.Reconciled = true
	txn.UpdatedAt = time.Now().UTC()

	if err := uc.orchestrator.Update(ctx, txn); err != nil {
		return nil, err
	}
	return &ReconcileTransactionOutput{Transaction: txn}, nil
}
