package categoryrule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	// MaxMatchTextLength is the maximum allowed length for rule match text.
	MaxMatchTextLength = 255
)

// CreateCategoryRuleInput represents the input for category rule creation.
type CreateCategoryRuleInput struct {
	UserID        uuid.UUID
	MatchText     string
	CategoryID    uuid.UUID
	Priority      *int // Optional, defaults to max priority + 1
	ApplyExisting bool // Recategorize the user's existing matching rows
}

// CreateCategoryRuleOutput represents the output of category rule creation.
type CreateCategoryRuleOutput struct {
	Rule                *entity.CategoryRule
	TransactionsUpdated int
}

// CreateCategoryRuleUseCase handles category rule creation logic.
type CreateCategoryRuleUseCase struct {
	ruleRepo     adapter.CategoryRuleRepository
	categoryRepo adapter.CategoryRepository
	engine       *ledger.RuleEngine
}

// NewCreateCategoryRuleUseCase creates a new CreateCategoryRuleUseCase instance.
func NewCreateCategoryRuleUseCase(
	ruleRepo adapter.CategoryRuleRepository,
	categoryRepo adapter.CategoryRepository,
	engine *ledger.RuleEngine,
) *CreateCategoryRuleUseCase {
	return &CreateCategoryRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		engine:       engine,
	}
}

// Execute performs the category rule creation.
func (uc *CreateCategoryRuleUseCase) Execute(ctx context.Context, input CreateCategoryRuleInput) (*CreateCategoryRuleOutput, error) {
	matchText := strings.TrimSpace(input.MatchText)
	if matchText == "" {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeMissingMatchText,
			"match text is required",
			domainerror.ErrCategoryRuleMissingText,
		)
	}
	if len(matchText) > MaxMatchTextLength {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeMatchTextTooLong,
			fmt.Sprintf("match text must not exceed %d characters", MaxMatchTextLength),
			domainerror.ErrMatchTextTooLong,
		)
	}

	// The category must be a system category or one of the user's own
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || !category.VisibleTo(input.UserID) {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeCategoryNotFoundForRule,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	priority := 0
	if input.Priority != nil {
		priority = *input.Priority
	} else {
		maxPriority, err := uc.ruleRepo.GetMaxPriorityByUser(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get max priority: %w", err)
		}
		priority = maxPriority + 1
	}

	rule := entity.NewCategoryRule(input.UserID, matchText, input.CategoryID, priority)
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create category rule: %w", err)
	}

	output := &CreateCategoryRuleOutput{Rule: rule}
	if input.ApplyExisting {
		count, err := uc.engine.ApplyBulk(ctx, rule)
		if err != nil {
			return nil, fmt.Errorf("failed to apply category rule: %w", err)
		}
		output.TransactionsUpdated = count
	}

	return output, nil
}
