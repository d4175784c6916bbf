package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// RuleEngine assigns categories from the user's text rules.
type RuleEngine struct {
	rules        adapter.CategoryRuleRepository
	transactions adapter.TransactionRepository
	system       entity.SystemCategories
}

// NewRuleEngine creates a new RuleEngine instance.
func NewRuleEngine(
	rules adapter.CategoryRuleRepository,
	transactions adapter.TransactionRepository,
	system entity.SystemCategories,
) *RuleEngine {
	return &RuleEngine{
		rules:        rules,
		transactions: transactions,
		system:       system,
	}
}

// Match returns the first rule, in ascending priority, whose text occurs in
// description. Inactive rules are skipped. It returns nil when nothing matches.
func Match(rules []*entity.CategoryRule, description string) *entity.CategoryRule {
	ordered := make([]*entity.CategoryRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for _, rule := range ordered {
		if rule.IsActive && rule.Matches(description) {
			return rule
		}
	}
	return nil
}

// Suggest returns the category of the user's first matching rule.
func (e *RuleEngine) Suggest(ctx context.Context, userID uuid.UUID, description string) (uuid.UUID, bool, error) {
	rules, err := e.rules.FindActiveByUser(ctx, userID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to load category rules: %w", err)
	}

	rule := Match(rules, description)
	if rule == nil {
		return uuid.Nil, false, nil
	}
	return rule.CategoryID, true, nil
}

// Apply categorizes txn from the rules when it has no category or the default one.
// It reports whether the category changed. The row is not saved.
func (e *RuleEngine) Apply(ctx context.Context, txn *entity.Transaction) (bool, error) {
	if !e.system.IsDefault(txn.CategoryID) {
		return false, nil
	}

	categoryID, ok, err := e.Suggest(ctx, txn.UserID, txn.Description)
	if err != nil || !ok || categoryID == txn.CategoryID {
		return false, err
	}

	txn.CategoryID = categoryID
	return true, nil
}

// ApplyBulk assigns the rule's category to every matching row of its owner.
func (e *RuleEngine) ApplyBulk(ctx context.Context, rule *entity.CategoryRule) (int, error) {
	count, err := e.transactions.BulkUpdateCategoryByText(ctx, rule.UserID, rule.MatchText, rule.CategoryID)
	if err != nil {
		return 0, err
	}

	slog.Info("category rule applied", "ruleID", rule.ID, "transactionsUpdated", count)
	return count, nil
}
