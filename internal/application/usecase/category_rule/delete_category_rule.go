package categoryrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// DeleteCategoryRuleInput represents the input for category rule deletion.
type DeleteCategoryRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteCategoryRuleUseCase handles category rule deletion logic.
type DeleteCategoryRuleUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
}

// NewDeleteCategoryRuleUseCase creates a new DeleteCategoryRuleUseCase instance.
func NewDeleteCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository) *DeleteCategoryRuleUseCase {
	return &DeleteCategoryRuleUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute deletes the rule. Rows it already categorized keep their category.
func (uc *DeleteCategoryRuleUseCase) Execute(ctx context.Context, input DeleteCategoryRuleInput) error {
	if _, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID); err != nil {
		return err
	}

	if err := uc.ruleRepo.Delete(ctx, input.RuleID); err != nil {
		return fmt.Errorf("failed to delete category rule: %w", err)
	}
	return nil
}
