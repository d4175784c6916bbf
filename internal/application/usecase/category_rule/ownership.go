// Package categoryrule contains category rule-related use cases.
package categoryrule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func findOwnedRule(ctx context.Context, ruleRepo adapter.CategoryRuleRepository, ruleID, userID uuid.UUID) (*entity.CategoryRule, error) {
	rule, err := ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
			return nil, ruleNotFound()
		}
		return nil, fmt.Errorf("failed to find category rule: %w", err)
	}

	// Rules of other users are reported as missing.
	if rule.UserID != userID {
		return nil, ruleNotFound()
	}
	return rule, nil
}

func ruleNotFound() error {
	return domainerror.NewCategoryRuleError(
		domainerror.ErrCodeCategoryRuleNotFound,
		"category rule not found",
		domainerror.ErrCategoryRuleNotFound,
	)
}
