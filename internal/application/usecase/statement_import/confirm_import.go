package statementimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	accountusecase "github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// ConfirmImportInput represents the rows to import into an account.
type ConfirmImportInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Rows      []RawRow
}

// ConfirmImportOutput summarizes an import.
type ConfirmImportOutput struct {
	Imported          int
	SkippedDuplicates int
	SkippedOld        int
	Warnings          []string
	Transactions      []*entity.Transaction
}

// ConfirmImportUseCase imports statement rows as reconciled transactions.
type ConfirmImportUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	orchestrator    *ledger.Orchestrator
	locker          adapter.Locker
	lockTTL         time.Duration
	clock           adapter.Clock
}

// NewConfirmImportUseCase creates a new ConfirmImportUseCase instance.
func NewConfirmImportUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	orchestrator *ledger.Orchestrator,
	locker adapter.Locker,
	lockTTL time.Duration,
	clock adapter.Clock,
) *ConfirmImportUseCase {
	return &ConfirmImportUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		orchestrator:    orchestrator,
		locker:          locker,
		lockTTL:         lockTTL,
		clock:           clock,
	}
}

// Execute imports every row not seen before. Either all of them are stored or none.
func (uc *ConfirmImportUseCase) Execute(ctx context.Context, input ConfirmImportInput) (*ConfirmImportOutput, error) {
	account, err := accountusecase.FindOwned(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	release, err := uc.locker.Acquire(ctx, "import:"+account.ID.String(), uc.lockTTL)
	if errors.Is(err, adapter.ErrLockHeld) {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeImportBusy,
			"an import for this account is already running",
			domainerror.ErrImportBusy,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account import: %w", err)
	}
	defer release()

	output := &ConfirmImportOutput{}
	today := valueobject.DateOf(uc.clock.Now())
	err = uc.orchestrator.Batch(ctx, func(ctx context.Context) error {
		result, err := parseRows(ctx, uc.transactionRepo, account, input.Rows)
		if err != nil {
			return err
		}
		output.Warnings = result.warnings
		output.SkippedOld = len(result.oldRows)

		for _, candidate := range result.candidates {
			if candidate.AlreadyImported {
				output.SkippedDuplicates++
				continue
			}

			categoryID := uuid.Nil
			if candidate.CategoryID != nil {
				categoryID = *candidate.CategoryID
			}
			effective := candidate.EffectiveDate
			fingerprint := candidate.Fingerprint

			txn := entity.NewTransaction(
				input.UserID,
				entity.AccountTarget(account.ID),
				candidate.Description,
				candidate.Amount,
				candidate.Type,
				candidate.AccrualDate,
				&effective,
				categoryID,
			)
			txn.DocumentNumber = candidate.DocumentNumber
			txn.ImportFingerprint = &fingerprint
			txn.Reconciled = !effective.After(today)

			if err := uc.orchestrator.Create(ctx, txn); err != nil {
				return fmt.Errorf("row %d: %w", candidate.Row, err)
			}
			output.Transactions = append(output.Transactions, txn)
		}
		output.Imported = len(output.Transactions)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("statement imported",
		"accountID", account.ID,
		"imported", output.Imported,
		"skippedDuplicates", output.SkippedDuplicates,
		"skippedOld", output.SkippedOld,
		"warnings", len(output.Warnings),
	)
	return output, nil
}
