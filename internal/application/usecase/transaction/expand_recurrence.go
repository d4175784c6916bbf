package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ExpandRecurrenceInput turns an existing transaction into the first occurrence of a series.
type ExpandRecurrenceInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Period        string
	Count         int
}

// ExpandRecurrenceOutput represents the output of expanding a recurrence.
type ExpandRecurrenceOutput struct {
	Occurrences []*entity.Transaction
}

// ExpandRecurrenceUseCase handles recurrence expansion of stored transactions.
type ExpandRecurrenceUseCase struct {
	transactionRepo adapter.TransactionRepository
	recurrence      *ledger.RecurrenceGenerator
}

// NewExpandRecurrenceUseCase creates a new ExpandRecurrenceUseCase instance.
func NewExpandRecurrenceUseCase(
	transactionRepo adapter.TransactionRepository,
	recurrence *ledger.RecurrenceGenerator,
) *ExpandRecurrenceUseCase {
	return &ExpandRecurrenceUseCase{
		transactionRepo: transactionRepo,
		recurrence:      recurrence,
	}
}

// Execute creates the occurrences after the stored transaction.
func (uc *ExpandRecurrenceUseCase) Execute(ctx context.Context, input ExpandRecurrenceInput) (*ExpandRecurrenceOutput, error) {
	period, err := parseRecurrence(input.Period, input.Count)
	if err != nil {
		return nil, err
	}

	txn, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	occurrences, err := uc.recurrence.Expand(ctx, txn, period, input.Count)
	if err != nil {
		return nil, err
	}
	return &ExpandRecurrenceOutput{Occurrences: occurrences}, nil
}
