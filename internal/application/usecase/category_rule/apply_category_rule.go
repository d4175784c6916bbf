package categoryrule

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// ApplyCategoryRuleInput represents the input for applying a rule to existing rows.
type ApplyCategoryRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// ApplyCategoryRuleOutput represents the output of applying a rule.
type ApplyCategoryRuleOutput struct {
	TransactionsUpdated int
}

// ApplyCategoryRuleUseCase recategorizes every matching row of the rule's owner.
type ApplyCategoryRuleUseCase struct {
	ruleRepo adapter.CategoryRuleRepository
	engine   *ledger.RuleEngine
}

// NewApplyCategoryRuleUseCase creates a new ApplyCategoryRuleUseCase instance.
func NewApplyCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository, engine *ledger.RuleEngine) *ApplyCategoryRuleUseCase {
	return &ApplyCategoryRuleUseCase{
		ruleRepo: ruleRepo,
		engine:   engine,
	}
}

// Execute applies the rule.
func (uc *ApplyCategoryRuleUseCase) Execute(ctx context.Context, input ApplyCategoryRuleInput) (*ApplyCategoryRuleOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	count, err := uc.engine.ApplyBulk(ctx, rule)
	if err != nil {
		return nil, err
	}
	return &ApplyCategoryRuleOutput{TransactionsUpdated: count}, nil
}
