package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SuggestCategoryInput represents the input for suggesting a category.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
}

// SuggestCategoryOutput represents the suggested category.
type SuggestCategoryOutput struct {
	CategoryID uuid.UUID
	Matched    bool // false when no rule matched and the fallback category was returned
}

// SuggestCategoryUseCase suggests a category for a description using the user's rules.
type SuggestCategoryUseCase struct {
	engine *ledger.RuleEngine
	system entity.SystemCategories
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(engine *ledger.RuleEngine, system entity.SystemCategories) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		engine: engine,
		system: system,
	}
}

// Execute returns the category of the first matching rule, or the fallback category.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	categoryID, matched, err := uc.engine.Suggest(ctx, input.UserID, input.Description)
	if err != nil {
		return nil, err
	}
	if !matched {
		categoryID = uc.system.Other
	}
	return &SuggestCategoryOutput{CategoryID: categoryID, Matched: matched}, nil
}
