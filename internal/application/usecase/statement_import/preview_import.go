package statementimport

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	accountusecase "github.com/finance-tracker/ledger/internal/application/usecase/account"
)

// PreviewImportInput represents the rows to review before importing.
type PreviewImportInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Rows      []RawRow
}

// PreviewImportOutput lists what a confirmation would import.
type PreviewImportOutput struct {
	Candidates []Candidate
	OldRows    []OldRow
	Warnings   []string
}

// PreviewImportUseCase parses statement rows without writing anything.
type PreviewImportUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	engine          *ledger.RuleEngine
}

// NewPreviewImportUseCase creates a new PreviewImportUseCase instance.
func NewPreviewImportUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	engine *ledger.RuleEngine,
) *PreviewImportUseCase {
	return &PreviewImportUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		engine:          engine,
	}
}

// Execute parses the rows and suggests a category for each candidate the
// caller left uncategorized.
func (uc *PreviewImportUseCase) Execute(ctx context.Context, input PreviewImportInput) (*PreviewImportOutput, error) {
	account, err := accountusecase.FindOwned(ctx, uc.accountRepo, input.AccountID, input.UserID)
	if err != nil {
		return nil, err
	}

	result, err := parseRows(ctx, uc.transactionRepo, account, input.Rows)
	if err != nil {
		return nil, err
	}

	for i := range result.candidates {
		if result.candidates[i].CategoryID != nil {
			continue
		}
		categoryID, matched, err := uc.engine.Suggest(ctx, input.UserID, result.candidates[i].Description)
		if err != nil {
			return nil, err
		}
		if matched {
			result.candidates[i].CategoryID = &categoryID
		}
	}

	return &PreviewImportOutput{
		Candidates: result.candidates,
		OldRows:    result.oldRows,
		Warnings:   result.warnings,
	}, nil
}
