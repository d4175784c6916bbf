package categoryrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListCategoryRulesInput represents the input for listing category rules.
type ListCategoryRulesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool // If true, only return active rules
}

// ListCategoryRulesOutput represents the output of listing category rules.
type ListCategoryRulesOutput struct {
	Rules []*entity.CategoryRule // Ordered by priority
}

// ListCategoryRulesUseCase handles listing category rules logic.
type ListCategoryRulesUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
}

// NewListCategoryRulesUseCase creates a new ListCategoryRulesUseCase instance.
func NewListCategoryRulesUseCase(ruleRepo adapter.CategoryRuleRepository) *ListCategoryRulesUseCase {
	return &ListCategoryRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the category rules listing.
func (uc *ListCategoryRulesUseCase) Execute(ctx context.Context, input ListCategoryRulesInput) (*ListCategoryRulesOutput, error) {
	var (
		rules []*entity.CategoryRule
		err   error
	)
	if input.ActiveOnly {
		rules, err = uc.ruleRepo.FindActiveByUser(ctx, input.UserID)
	} else {
		rules, err = uc.ruleRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", err)
	}

	return &ListCategoryRulesOutput{Rules: rules}, nil
}
