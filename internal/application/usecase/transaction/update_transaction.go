package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UpdateTransactionInput represents a partial edit. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	AccrualDate   *time.Time
	EffectiveDate *time.Time
	CategoryID    *uuid.UUID
	AccountID     *uuid.UUID
	CardID        *uuid.UUID
	// ApplyToSeries copies description, amount, type, category and target to
	// the later unreconciled occurrences of the same recurrence.
	ApplyToSeries bool
}

// UpdateTransactionOutput represents the output of updating a transaction.
type UpdateTransactionOutput struct {
	Transaction   *entity.Transaction
	SeriesUpdated int
}

// UpdateTransactionUseCase handles transaction edits.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	invoiceRepo     adapter.InvoiceRepository
	targets         targets
	orchestrator    *ledger.Orchestrator
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	cardRepo adapter.CardRepository,
	invoiceRepo adapter.InvoiceRepository,
	orchestrator *ledger.Orchestrator,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		invoiceRepo:     invoiceRepo,
		targets:         targets{accountRepo: accountRepo, cardRepo: cardRepo},
		orchestrator:    orchestrator,
	}
}

// Execute applies the edit. The payment of a closed invoice keeps its amount,
// type and target until the invoice is reopened.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	before := *txn
	seriesFrom := txn.AccrualDate

	if input.AccountID != nil || input.CardID != nil {
		target, err := buildTarget(input.AccountID, input.CardID)
		if err != nil {
			return nil, err
		}
		if err := uc.targets.checkOwned(ctx, target, input.UserID); err != nil {
			return nil, err
		}
		txn.Target = target
	}
	if input.AccrualDate != nil {
		txn.AccrualDate = *input.AccrualDate
	}
	if input.EffectiveDate != nil {
		effective := *input.EffectiveDate
		txn.EffectiveDate = &effective
	}
	applyShared(txn, input)
	txn.UpdatedAt = time.Now().UTC()

	if changesPayment(&before, txn) {
		if err := ensureNotClosedPayment(ctx, uc.invoiceRepo, txn); err != nil {
			return nil, err
		}
	}

	output := &UpdateTransactionOutput{Transaction: txn}
	err = uc.orchestrator.Batch(ctx, func(ctx context.Context) error {
		if err := uc.orchestrator.Update(ctx, txn); err != nil {
			return err
		}
		if !input.ApplyToSeries || txn.RecurrenceID == nil {
			return nil
		}

		series, err := uc.transactionRepo.FindSeriesFrom(ctx, *txn.RecurrenceID, seriesFrom)
		if err != nil {
			return fmt.Errorf("failed to load series: %w", err)
		}
		for _, occurrence := range series {
			if occurrence.ID == txn.ID {
				continue
			}
			previous := *occurrence
			if input.AccountID != nil || input.CardID != nil {
				occurrence.Target = txn.Target
			}
			applyShared(occurrence, input)
			occurrence.UpdatedAt = txn.UpdatedAt
			if changesPayment(&previous, occurrence) {
				if err := ensureNotClosedPayment(ctx, uc.invoiceRepo, occurrence); err != nil {
					return err
				}
			}
			if err := uc.orchestrator.Update(ctx, occurrence); err != nil {
				return err
			}
			output.SeriesUpdated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// applyShared sets the fields an edit propagates along a series.
func applyShared(txn *entity.Transaction, input UpdateTransactionInput) {
	if input.Description != nil {
		txn.Description = *input.Description
	}
	if input.Amount != nil {
		txn.Amount = *input.Amount
	}
	if input.Type != nil {
		txn.Type = *input.Type
	}
	if input.CategoryID != nil {
		txn.CategoryID = *input.CategoryID
	}
}
