package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// RecurrenceInput asks for a transaction to be repeated.
type RecurrenceInput struct {
	Period string // daily, weekly, monthly, semiannual or annual; empty means monthly
	Count  int    // Total occurrences including the first one
}

// CreateTransactionInput represents the input for creating a transaction.
type CreateTransactionInput struct {
	UserID         uuid.UUID
	AccountID      *uuid.UUID
	CardID         *uuid.UUID
	Description    string
	Amount         decimal.Decimal
	Type           entity.TransactionType
	AccrualDate    time.Time
	EffectiveDate  *time.Time
	Reconciled     bool
	CategoryID     *uuid.UUID // nil lets category rules decide
	DocumentNumber string
	Recurrence     *RecurrenceInput
}

// CreateTransactionOutput represents the output of creating a transaction.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
	Occurrences []*entity.Transaction // Rows generated by the recurrence, excluding Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	targets      targets
	orchestrator *ledger.Orchestrator
	recurrence   *ledger.RecurrenceGenerator
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	accountRepo adapter.AccountRepository,
	cardRepo adapter.CardRepository,
	orchestrator *ledger.Orchestrator,
	recurrence *ledger.RecurrenceGenerator,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		targets:      targets{accountRepo: accountRepo, cardRepo: cardRepo},
		orchestrator: orchestrator,
		recurrence:   recurrence,
	}
}

// Execute creates the transaction and, when asked, its future occurrences.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	target, err := buildTarget(input.AccountID, input.CardID)
	if err != nil {
		return nil, err
	}
	if err := uc.targets.checkOwned(ctx, target, input.UserID); err != nil {
		return nil, err
	}

	var period valueobject.RecurrencePeriod
	if input.Recurrence != nil {
		period, err = parseRecurrence(input.Recurrence.Period, input.Recurrence.Count)
		if err != nil {
			return nil, err
		}
	}

	categoryID := uuid.Nil
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
	}

	txn := entity.NewTransaction(
		input.UserID,
		target,
		input.Description,
		input.Amount,
		input.Type,
		input.AccrualDate,
		input.EffectiveDate,
		categoryID,
	)
	txn.Reconciled = input.Reconciled
	txn.DocumentNumber = input.DocumentNumber

	output := &CreateTransactionOutput{Transaction: txn}
	err = uc.orchestrator.Batch(ctx, func(ctx context.Context) error {
		if err := uc.orchestrator.Create(ctx, txn); err != nil {
			return err
		}
		if input.Recurrence == nil {
			return nil
		}
		occurrences, err := uc.recurrence.Expand(ctx, txn, period, input.Recurrence.Count)
		if err != nil {
			return err
		}
		output.Occurrences = occurrences
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func parseRecurrence(value string, count int) (valueobject.RecurrencePeriod, error) {
	period, err := valueobject.ParseRecurrencePeriod(value)
	if err != nil || count < 1 || count > ledger.MaxRecurrenceCount {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidRecurrence,
			"recurrence period or count is invalid",
			domainerror.ErrInvalidRecurrence,
		)
	}
	return period, nil
}
