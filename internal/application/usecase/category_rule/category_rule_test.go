package categoryrule_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger/ledgertest"
	categoryrule "github.com/finance-tracker/ledger/internal/application/usecase/category_rule"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func TestCreateCategoryRule(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	userID := uuid.New()
	food := env.Category(t, userID, "Food")
	foreign := env.Category(t, uuid.New(), "Theirs")
	create := categoryrule.NewCreateCategoryRuleUseCase(env.Rules, env.Categories, env.Engine)

	tests := []struct {
		name       string
		matchText  string
		categoryID uuid.UUID
		wantCode   domainerror.CategoryRuleErrorCode
	}{
		{name: "blank text", matchText: "  ", categoryID: food.ID, wantCode: domainerror.ErrCodeMissingMatchText},
		{name: "text too long", matchText: strings.Repeat("a", 256), categoryID: food.ID, wantCode: domainerror.ErrCodeMatchTextTooLong},
		{name: "unknown category", matchText: "market", categoryID: uuid.New(), wantCode: domainerror.ErrCodeCategoryNotFoundForRule},
		{name: "category of another user", matchText: "market", categoryID: foreign.ID, wantCode: domainerror.ErrCodeCategoryNotFoundForRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := create.Execute(ctx, categoryrule.CreateCategoryRuleInput{UserID: userID, MatchText: tt.matchText, CategoryID: tt.categoryID})
			var ruleErr *domainerror.CategoryRuleError
			if !errors.As(err, &ruleErr) || ruleErr.Code != tt.wantCode {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}

	t.Run("priorities are appended", func(t *testing.T) {
		first, err := create.Execute(ctx, categoryrule.CreateCategoryRuleInput{UserID: userID, MatchText: "market", CategoryID: food.ID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		second, err := create.Execute(ctx, categoryrule.CreateCategoryRuleInput{UserID: userID, MatchText: "bakery", CategoryID: env.System.Other})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if first.Rule.Priority != 1 || second.Rule.Priority != 2 {
			t.Errorf("priorities = %d, %d, want 1, 2", first.Rule.Priority, second.Rule.Priority)
		}
	})
}

func TestRuleManagement(t *testing.T) {
	ctx := context.Background()
	env := ledgertest.New(t)
	userID := uuid.New()
	account := env.Account(t, userID, "0")
	transport := env.Category(t, userID, "Transport")

	for _, description := range []string{"UBER TRIP 1", "uber trip 2", "market"} {
		txn := entity.NewTransaction(userID, entity.AccountTarget(account.ID), description, decimal.NewFromInt(10), entity.TransactionTypeDebit, ledgertest.Date(2024, 6, 1), nil, uuid.Nil)
		if err := env.Orchestrator.Create(ctx, txn); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	create := categoryrule.NewCreateCategoryRuleUseCase(env.Rules, env.Categories, env.Engine)
	list := categoryrule.NewListCategoryRulesUseCase(env.Rules)
	apply := categoryrule.NewApplyCategoryRuleUseCase(env.Rules, env.Engine)
	remove := categoryrule.NewDeleteCategoryRuleUseCase(env.Rules)

	priority := 5
	created, err := create.Execute(ctx, categoryrule.CreateCategoryRuleInput{
		UserID:        userID,
		MatchText:     "uber",
		CategoryID:    transport.ID,
		Priority:      &priority,
		ApplyExisting: true,
	})
	if err != nil {
		t.Fatalf("Create Execute() error = %v", err)
	}
	if created.TransactionsUpdated != 2 {
		t.Errorf("TransactionsUpdated = %d, want 2", created.TransactionsUpdated)
	}

	t.Run("apply again changes nothing", func(t *testing.T) {
		out, err := apply.Execute(ctx, categoryrule.ApplyCategoryRuleInput{RuleID: created.Rule.ID, UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.TransactionsUpdated != 0 {
			t.Errorf("TransactionsUpdated = %d, want 0", out.TransactionsUpdated)
		}
	})

	t.Run("list", func(t *testing.T) {
		out, err := list.Execute(ctx, categoryrule.ListCategoryRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(out.Rules) != 1 || out.Rules[0].Priority != 5 {
			t.Errorf("rules = %+v, want one rule with priority 5", out.Rules)
		}
	})

	t.Run("other users cannot touch the rule", func(t *testing.T) {
		_, err := apply.Execute(ctx, categoryrule.ApplyCategoryRuleInput{RuleID: created.Rule.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
			t.Errorf("apply error = %v, want ErrCategoryRuleNotFound", err)
		}
		err = remove.Execute(ctx, categoryrule.DeleteCategoryRuleInput{RuleID: created.Rule.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
			t.Errorf("delete error = %v, want ErrCategoryRuleNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := remove.Execute(ctx, categoryrule.DeleteCategoryRuleInput{RuleID: created.Rule.ID, UserID: userID}); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		out, err := list.Execute(ctx, categoryrule.ListCategoryRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(out.Rules) != 0 {
			t.Errorf("len(Rules) = %d, want 0", len(out.Rules))
		}
	})
}
